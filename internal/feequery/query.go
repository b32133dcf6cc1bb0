package feequery

import (
	"errors"
	"fmt"
	"slices"

	"github.com/navid-fn/feeboard/internal/models"
)

// DefaultNotionals are the notional tiers offered when none are configured.
var DefaultNotionals = []string{"100", "500", "1000"}

var ErrUnknownNotional = errors.New("unknown notional tier")

// Query is the user-controlled state of the fee table.
type Query struct {
	Text     string   `json:"q"`
	Notional string   `json:"notional"`
	Sort     SortSpec `json:"sort"`
}

// Row is one rendered line of the fee table.
type Row struct {
	Key       string   `json:"key"`
	Symbol    string   `json:"symbol"`
	Source    string   `json:"source"`
	Datetime  string   `json:"datetime,omitempty"`
	Maker     *float64 `json:"maker"`
	Taker     *float64 `json:"taker"`
	MakerText string   `json:"maker_text"`
	TakerText string   `json:"taker_text"`
	Updated   string   `json:"updated"`
}

// Result is the answer to a Query.
type Result struct {
	Query   Query `json:"query"`
	Showing int   `json:"showing"`
	Rows    []Row `json:"rows"`
}

// Engine answers queries over one immutable dataset snapshot.
// The deduplicated view is computed once; filter and sort run per query.
type Engine struct {
	notionals []string
	latest    []models.FeeRecord
}

// NewEngine reduces records to their latest view. The first notional is
// the default tier; an empty list means DefaultNotionals.
func NewEngine(records []models.FeeRecord, notionals []string) *Engine {
	if len(notionals) == 0 {
		notionals = DefaultNotionals
	}
	return &Engine{
		notionals: slices.Clone(notionals),
		latest:    Latest(records),
	}
}

// Notionals returns the offered tiers.
func (e *Engine) Notionals() []string {
	return slices.Clone(e.notionals)
}

// Size is the number of records in the deduplicated view.
func (e *Engine) Size() int {
	return len(e.latest)
}

// Normalize fills defaults into q and validates its notional and sort.
func (e *Engine) Normalize(q Query) (Query, error) {
	if q.Notional == "" {
		q.Notional = e.notionals[0]
	}
	if !slices.Contains(e.notionals, q.Notional) {
		return q, fmt.Errorf("%w: %q", ErrUnknownNotional, q.Notional)
	}
	if q.Sort.Field == "" {
		q.Sort.Field = FieldSymbol
	}
	if q.Sort.Dir == "" {
		q.Sort.Dir = Asc
	}
	if _, err := ParseField(string(q.Sort.Field)); err != nil {
		return q, err
	}
	if _, err := ParseDirection(string(q.Sort.Dir)); err != nil {
		return q, err
	}
	return q, nil
}

// Run filters and sorts the latest view.
func (e *Engine) Run(q Query) (Result, error) {
	q, err := e.Normalize(q)
	if err != nil {
		return Result{}, err
	}

	sorted := Sort(Filter(e.latest, q.Text), q.Sort, q.Notional)

	rows := make([]Row, 0, len(sorted))
	for i, r := range sorted {
		rows = append(rows, newRow(i, r, q.Notional))
	}

	return Result{Query: q, Showing: len(rows), Rows: rows}, nil
}

func newRow(idx int, r models.FeeRecord, notional string) Row {
	row := Row{
		Key:      fmt.Sprintf("%s-%s-%d", r.Symbol, r.Source, idx),
		Symbol:   r.Symbol,
		Source:   r.Source,
		Datetime: r.Datetime,
		Updated:  FormatTimestamp(r.Datetime),
	}

	maker, ok := r.Fee(models.SideMaker, notional)
	if ok {
		row.Maker = &maker
	}
	row.MakerText = FormatFee(maker, ok)

	taker, ok := r.Fee(models.SideTaker, notional)
	if ok {
		row.Taker = &taker
	}
	row.TakerText = FormatFee(taker, ok)

	return row
}
