// Package models defines the domain models used across the application.
package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Side is the fee side of an order book interaction.
type Side string

const (
	// SideMaker is the fee charged for providing liquidity.
	SideMaker Side = "maker"

	// SideTaker is the fee charged for consuming liquidity.
	SideTaker Side = "taker"
)

// FeeSide maps a notional tier (e.g. "100", "500") to its fee.
// Tiers whose value is null or not a number are dropped while decoding,
// so a lookup miss always means "no numeric fee at this tier".
type FeeSide map[string]float64

// UnmarshalJSON keeps only numeric tier values.
func (s *FeeSide) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}

	out := make(FeeSide, len(raw))
	for tier, v := range raw {
		if f, ok := v.(float64); ok {
			out[tier] = f
		}
	}
	*s = out
	return nil
}

// Fees holds both fee sides of a record.
type Fees struct {
	Maker FeeSide `json:"maker,omitempty"`
	Taker FeeSide `json:"taker,omitempty"`
}

// FeeRecord is one raw row of the fee dataset: the fee schedule a source
// published for a symbol at a point in time.
type FeeRecord struct {
	// Symbol is the trading instrument (e.g., "BTC-EUR").
	Symbol string `json:"symbol"`

	// Source is the fee-schedule provider (e.g., "bitvavo").
	Source string `json:"source"`

	// Datetime is when the schedule was observed. It is kept verbatim;
	// it may be empty or unparsable.
	Datetime string `json:"datetime,omitempty"`

	// Fees is the per-side, per-notional fee table. May be nil.
	Fees *Fees `json:"fees,omitempty"`
}

// epochLayout renders numeric timestamps with millisecond precision in UTC.
const epochLayout = "2006-01-02T15:04:05.000Z07:00"

// UnmarshalJSON accepts "timestamp" as an alias of "datetime". A numeric
// value is read as Unix milliseconds; any other non-string value is
// treated as missing.
func (r *FeeRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Symbol    string `json:"symbol"`
		Source    string `json:"source"`
		Datetime  any    `json:"datetime"`
		Timestamp any    `json:"timestamp"`
		Fees      *Fees  `json:"fees"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Symbol = aux.Symbol
	r.Source = aux.Source
	r.Datetime = datetimeString(aux.Datetime)
	if r.Datetime == "" {
		r.Datetime = datetimeString(aux.Timestamp)
	}
	r.Fees = aux.Fees
	return nil
}

func datetimeString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return time.UnixMilli(int64(t)).UTC().Format(epochLayout)
	}
	return ""
}

// Fee returns the numeric fee for side at the given notional tier.
func (r FeeRecord) Fee(side Side, notional string) (float64, bool) {
	if r.Fees == nil {
		return 0, false
	}

	var tiers FeeSide
	switch side {
	case SideMaker:
		tiers = r.Fees.Maker
	case SideTaker:
		tiers = r.Fees.Taker
	}
	v, ok := tiers[notional]
	return v, ok
}
