package feequery

import (
	"errors"
	"testing"

	"github.com/navid-fn/feeboard/internal/models"
)

func withFees(symbol string, maker, taker map[string]float64) models.FeeRecord {
	return models.FeeRecord{
		Symbol: symbol,
		Source: "Ex1",
		Fees:   &models.Fees{Maker: maker, Taker: taker},
	}
}

func symbols(records []models.FeeRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Symbol
	}
	return out
}

func assertOrder(t *testing.T, got []models.FeeRecord, want ...string) {
	t.Helper()
	gotSymbols := symbols(got)
	if len(gotSymbols) != len(want) {
		t.Fatalf("Expected %v, got %v", want, gotSymbols)
	}
	for i := range want {
		if gotSymbols[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, gotSymbols)
		}
	}
}

func TestSortSymbolToggle(t *testing.T) {
	input := []models.FeeRecord{rec("B", "x", ""), rec("A", "x", ""), rec("C", "x", "")}

	spec := DefaultSort()
	assertOrder(t, Sort(input, spec, "100"), "A", "B", "C")

	spec = spec.Toggle(FieldSymbol)
	if spec.Dir != Desc {
		t.Fatalf("Expected desc after toggle, got %s", spec.Dir)
	}
	assertOrder(t, Sort(input, spec, "100"), "C", "B", "A")

	spec = spec.Toggle(FieldSymbol)
	if spec.Dir != Asc {
		t.Errorf("Expected asc after second toggle, got %s", spec.Dir)
	}
}

func TestSortToggleNewFieldResetsToAsc(t *testing.T) {
	spec := SortSpec{Field: FieldSymbol, Dir: Desc}.Toggle(FieldMaker)
	if spec.Field != FieldMaker || spec.Dir != Asc {
		t.Errorf("Expected maker asc, got %s %s", spec.Field, spec.Dir)
	}
}

func TestSortSource(t *testing.T) {
	input := []models.FeeRecord{rec("1", "kraken", ""), rec("2", "Binance", ""), rec("3", "bitvavo", "")}
	assertOrder(t, Sort(input, SortSpec{Field: FieldSource, Dir: Asc}, "100"), "2", "3", "1")
	assertOrder(t, Sort(input, SortSpec{Field: FieldSource, Dir: Desc}, "100"), "1", "3", "2")
}

func TestSortFeeMissingLast(t *testing.T) {
	input := []models.FeeRecord{
		withFees("MISSING", map[string]float64{}, nil),
		withFees("FIVE", map[string]float64{"100": 5}, nil),
		withFees("ONE", map[string]float64{"100": 1}, nil),
		{Symbol: "NOFEES", Source: "Ex1"},
	}

	tests := []struct {
		name string
		dir  Direction
		want []string
	}{
		{"Ascending", Asc, []string{"ONE", "FIVE", "MISSING", "NOFEES"}},
		{"Descending", Desc, []string{"FIVE", "ONE", "MISSING", "NOFEES"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Sort(input, SortSpec{Field: FieldMaker, Dir: tt.dir}, "100")
			assertOrder(t, out, tt.want...)
		})
	}
}

func TestSortTakerUsesNotional(t *testing.T) {
	input := []models.FeeRecord{
		withFees("A", nil, map[string]float64{"100": 1, "500": 9}),
		withFees("B", nil, map[string]float64{"100": 2, "500": 3}),
	}

	assertOrder(t, Sort(input, SortSpec{Field: FieldTaker, Dir: Asc}, "100"), "A", "B")
	assertOrder(t, Sort(input, SortSpec{Field: FieldTaker, Dir: Asc}, "500"), "B", "A")
}

func TestSortStable(t *testing.T) {
	input := []models.FeeRecord{
		{Symbol: "SAME", Source: "first", Fees: &models.Fees{Maker: models.FeeSide{"100": 2}}},
		{Symbol: "OTHER", Source: "x", Fees: &models.Fees{Maker: models.FeeSide{"100": 1}}},
		{Symbol: "SAME", Source: "second", Fees: &models.Fees{Maker: models.FeeSide{"100": 2}}},
	}

	for _, spec := range []SortSpec{
		{Field: FieldSymbol, Dir: Asc},
		{Field: FieldSymbol, Dir: Desc},
		{Field: FieldMaker, Dir: Asc},
		{Field: FieldMaker, Dir: Desc},
	} {
		once := Sort(input, spec, "100")
		twice := Sort(once, spec, "100")

		var order []string
		for _, r := range twice {
			if r.Symbol == "SAME" {
				order = append(order, r.Source)
			}
		}
		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("%s %s: expected ties to keep input order, got %v", spec.Field, spec.Dir, order)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := []models.FeeRecord{rec("B", "x", ""), rec("A", "x", "")}
	Sort(input, DefaultSort(), "100")
	assertOrder(t, input, "B", "A")
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		if err != nil || got != f {
			t.Errorf("Expected %s to parse, got %s (%v)", f, got, err)
		}
	}

	if _, err := ParseField("volume"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("desc"); err != nil || d != Desc {
		t.Errorf("Expected desc, got %s (%v)", d, err)
	}
	if _, err := ParseDirection("up"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("Expected ErrUnknownDirection, got %v", err)
	}
}
