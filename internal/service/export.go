package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/navid-fn/feeboard/internal/feequery"
)

// WriteCSV writes the rows of res as CSV. Fees are written as exact
// decimals; missing fees and timestamps are empty cells.
func WriteCSV(w io.Writer, res feequery.Result) error {
	cw := csv.NewWriter(w)

	header := []string{
		"symbol",
		"source",
		fmt.Sprintf("maker_%s", res.Query.Notional),
		fmt.Sprintf("taker_%s", res.Query.Notional),
		"last_updated",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range res.Rows {
		updated := row.Updated
		if updated == feequery.Placeholder {
			updated = ""
		}
		record := []string{row.Symbol, row.Source, csvFee(row.Maker), csvFee(row.Taker), updated}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV runs q and writes the result as CSV.
func (fs *FeesService) ExportCSV(w io.Writer, q feequery.Query) error {
	res, err := fs.Query(q)
	if err != nil {
		return err
	}
	return WriteCSV(w, res)
}

func csvFee(v *float64) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromFloat(*v).String()
}
