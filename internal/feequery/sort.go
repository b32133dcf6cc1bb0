package feequery

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/navid-fn/feeboard/internal/models"
)

// Field is a sortable column.
type Field string

const (
	FieldSymbol Field = "symbol"
	FieldSource Field = "source"
	FieldMaker  Field = "maker"
	FieldTaker  Field = "taker"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var (
	ErrUnknownField     = errors.New("unknown sort field")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// Fields lists the sortable columns in display order.
var Fields = []Field{FieldSymbol, FieldSource, FieldMaker, FieldTaker}

// ParseField validates a sort field name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if slices.Contains(Fields, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// ParseDirection validates a sort direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// SortSpec is the current sort column and direction.
type SortSpec struct {
	Field Field     `json:"field"`
	Dir   Direction `json:"dir"`
}

// DefaultSort is symbol ascending.
func DefaultSort() SortSpec {
	return SortSpec{Field: FieldSymbol, Dir: Asc}
}

// Toggle returns the sort after a click on field's header: the same field
// flips direction, a different one starts ascending.
func (s SortSpec) Toggle(field Field) SortSpec {
	if s.Field == field {
		if s.Dir == Asc {
			return SortSpec{Field: field, Dir: Desc}
		}
		return SortSpec{Field: field, Dir: Asc}
	}
	return SortSpec{Field: field, Dir: Asc}
}

// Sort returns a stably sorted copy of records.
// For maker/taker the fee at notional is compared and records without a
// numeric fee go last in both directions.
func Sort(records []models.FeeRecord, spec SortSpec, notional string) []models.FeeRecord {
	out := slices.Clone(records)

	sign := 1
	if spec.Dir == Desc {
		sign = -1
	}

	switch spec.Field {
	case FieldSymbol:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.FeeRecord) int {
			return sign * col.CompareString(a.Symbol, b.Symbol)
		})
	case FieldSource:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.FeeRecord) int {
			return sign * col.CompareString(a.Source, b.Source)
		})
	case FieldMaker, FieldTaker:
		side := models.Side(spec.Field)
		slices.SortStableFunc(out, func(a, b models.FeeRecord) int {
			return compareFees(a, b, side, notional, sign)
		})
	}

	return out
}

func compareFees(a, b models.FeeRecord, side models.Side, notional string, sign int) int {
	va, okA := a.Fee(side, notional)
	vb, okB := b.Fee(side, notional)

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return sign * cmp.Compare(va, vb)
}
