package feequery

import (
	"errors"
	"testing"

	"github.com/navid-fn/feeboard/internal/models"
)

func sampleRecords() []models.FeeRecord {
	return []models.FeeRecord{
		{Symbol: "BTC-EUR", Source: "bitvavo", Datetime: "2024-01-01T00:00:00Z",
			Fees: &models.Fees{Maker: models.FeeSide{"100": 0.3}, Taker: models.FeeSide{"100": 0.4}}},
		{Symbol: "BTC-EUR", Source: "bitvavo", Datetime: "2024-06-01T00:00:00Z",
			Fees: &models.Fees{Maker: models.FeeSide{"100": 0.15, "500": 0.6}, Taker: models.FeeSide{"100": 0.25}}},
		{Symbol: "ETH-EUR", Source: "kraken", Datetime: "2024-05-01T08:30:00Z",
			Fees: &models.Fees{Maker: models.FeeSide{"100": 1250}}},
		{Symbol: "ADA-EUR", Source: "bitvavo"},
	}
}

func TestEngineRunDefaults(t *testing.T) {
	e := NewEngine(sampleRecords(), nil)

	if e.Size() != 3 {
		t.Fatalf("Expected 3 latest records, got %d", e.Size())
	}

	res, err := e.Run(Query{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.Query.Notional != "100" {
		t.Errorf("Expected default notional 100, got %s", res.Query.Notional)
	}
	if res.Query.Sort != DefaultSort() {
		t.Errorf("Expected default sort, got %+v", res.Query.Sort)
	}
	if res.Showing != 3 || len(res.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got showing=%d rows=%d", res.Showing, len(res.Rows))
	}

	first := res.Rows[0]
	if first.Symbol != "ADA-EUR" || first.MakerText != Placeholder || first.Updated != Placeholder {
		t.Errorf("Unexpected first row: %+v", first)
	}
	if first.Maker != nil || first.Taker != nil {
		t.Error("Expected nil fees for ADA-EUR")
	}
	if first.Key != "ADA-EUR-bitvavo-0" {
		t.Errorf("Expected key ADA-EUR-bitvavo-0, got %s", first.Key)
	}

	btc := res.Rows[1]
	if btc.Maker == nil || *btc.Maker != 0.15 {
		t.Errorf("Expected latest BTC maker 0.15, got %v", btc.Maker)
	}
	if btc.Updated != "2024-06-01 00:00:00" {
		t.Errorf("Expected updated 2024-06-01 00:00:00, got %s", btc.Updated)
	}

	if res.Rows[2].MakerText != "1,250" {
		t.Errorf("Expected grouped maker 1,250, got %s", res.Rows[2].MakerText)
	}
}

func TestEngineRunQuery(t *testing.T) {
	e := NewEngine(sampleRecords(), []string{"100", "500"})

	res, err := e.Run(Query{Text: "BITVAVO", Notional: "500", Sort: SortSpec{Field: FieldMaker, Dir: Desc}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.Showing != 2 {
		t.Fatalf("Expected 2 rows, got %d", res.Showing)
	}
	if res.Rows[0].Symbol != "BTC-EUR" || res.Rows[0].MakerText != "0.6" {
		t.Errorf("Expected BTC-EUR with maker 0.6 first, got %+v", res.Rows[0])
	}
	if res.Rows[1].Symbol != "ADA-EUR" {
		t.Errorf("Expected ADA-EUR (missing fee) last, got %s", res.Rows[1].Symbol)
	}
}

func TestEngineUnknownNotional(t *testing.T) {
	e := NewEngine(sampleRecords(), nil)

	if _, err := e.Run(Query{Notional: "250"}); !errors.Is(err, ErrUnknownNotional) {
		t.Errorf("Expected ErrUnknownNotional, got %v", err)
	}
}

func TestEngineUnknownSort(t *testing.T) {
	e := NewEngine(sampleRecords(), nil)

	if _, err := e.Run(Query{Sort: SortSpec{Field: "volume"}}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
	if _, err := e.Normalize(Query{Sort: SortSpec{Field: FieldMaker, Dir: "up"}}); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("Expected ErrUnknownDirection, got %v", err)
	}
}

func TestEngineNotionalsAreCopied(t *testing.T) {
	tiers := []string{"100", "500"}
	e := NewEngine(nil, tiers)
	tiers[0] = "999"

	got := e.Notionals()
	if got[0] != "100" {
		t.Errorf("Expected engine to own its tiers, got %v", got)
	}
	got[1] = "777"
	if e.Notionals()[1] != "500" {
		t.Error("Expected Notionals to return a copy")
	}
}
