package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/navid-fn/feeboard/internal/models"
)

// feeRow is one row of the fee_snapshot table: a single fee at one
// (symbol, source, datetime, side, notional) coordinate.
type feeRow struct {
	Symbol   string
	Source   string
	Datetime time.Time
	Side     string
	Notional string
	Fee      *float64
}

// ClickHouseSource reads the snapshot from the fee_snapshot table.
type ClickHouseSource struct {
	conn driver.Conn
}

// NewClickHouseSource opens a ClickHouse connection and verifies it with a
// ping. Returns an error if the server cannot be reached within 5 seconds.
func NewClickHouseSource(dsn string) (*ClickHouseSource, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &ClickHouseSource{conn: conn}, nil
}

func (s *ClickHouseSource) Name() string { return "clickhouse" }

// Load reads every fee row and folds them into records.
func (s *ClickHouseSource) Load(ctx context.Context) ([]models.FeeRecord, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT symbol, source, datetime, side, notional, fee
		FROM fee_snapshot
		ORDER BY symbol, source, datetime
	`)
	if err != nil {
		return nil, fmt.Errorf("query fee_snapshot: %w", err)
	}
	defer rows.Close()

	var flat []feeRow
	for rows.Next() {
		var r feeRow
		if err := rows.Scan(&r.Symbol, &r.Source, &r.Datetime, &r.Side, &r.Notional, &r.Fee); err != nil {
			return nil, fmt.Errorf("scan fee_snapshot: %w", err)
		}
		flat = append(flat, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read fee_snapshot: %w", err)
	}

	return assembleRows(flat), nil
}

// Close releases the connection.
func (s *ClickHouseSource) Close() error {
	return s.conn.Close()
}

// assembleRows groups flat rows sharing (symbol, source, datetime) into one
// record each, keeping the order in which groups first appear.
// A NULL fee or an unknown side leaves the tier absent.
func assembleRows(rows []feeRow) []models.FeeRecord {
	index := make(map[string]int)
	var out []models.FeeRecord

	for _, r := range rows {
		datetime := r.Datetime.UTC().Format(time.RFC3339Nano)
		k := r.Symbol + "\x00" + r.Source + "\x00" + datetime

		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.FeeRecord{
				Symbol:   r.Symbol,
				Source:   r.Source,
				Datetime: datetime,
				Fees:     &models.Fees{},
			})
		}

		if r.Fee == nil {
			continue
		}

		fees := out[i].Fees
		switch models.Side(r.Side) {
		case models.SideMaker:
			if fees.Maker == nil {
				fees.Maker = make(models.FeeSide)
			}
			fees.Maker[r.Notional] = *r.Fee
		case models.SideTaker:
			if fees.Taker == nil {
				fees.Taker = make(models.FeeSide)
			}
			fees.Taker[r.Notional] = *r.Fee
		}
	}

	return out
}
