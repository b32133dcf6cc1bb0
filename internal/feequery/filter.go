package feequery

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/navid-fn/feeboard/internal/models"
)

// Filter keeps records whose symbol or source contains query, ignoring case.
// A blank query returns records itself.
func Filter(records []models.FeeRecord, query string) []models.FeeRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]models.FeeRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(fold.String(r.Symbol), needle) ||
			strings.Contains(fold.String(r.Source), needle) {
			out = append(out, r)
		}
	}
	return out
}
