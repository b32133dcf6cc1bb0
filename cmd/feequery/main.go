package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/navid-fn/feeboard/configs"
	"github.com/navid-fn/feeboard/internal/dataset"
	"github.com/navid-fn/feeboard/internal/feequery"
	"github.com/navid-fn/feeboard/internal/logger"
	"github.com/navid-fn/feeboard/internal/repository"
	"github.com/navid-fn/feeboard/internal/service"
)

func main() {
	cfg := configs.AppLoad()

	var (
		path     string
		text     string
		notional string
		field    string
		dir      string
		format   string
	)
	flag.StringVar(&path, "data", cfg.Dataset.Path, "JSON dataset to query")
	flag.StringVar(&text, "q", "", "Case-insensitive search on symbol or source")
	flag.StringVar(&notional, "notional", "", "Notional tier: "+strings.Join(cfg.Notionals, ", "))
	flag.StringVar(&field, "sort", string(feequery.FieldSymbol), "Sort field: symbol, source, maker, taker")
	flag.StringVar(&dir, "dir", string(feequery.Asc), "Sort direction: asc, desc")
	flag.StringVar(&format, "format", "table", "Output format: table, csv, json")
	flag.Parse()

	log := logger.New(cfg.LogLevel)
	log.SetOutput(os.Stderr)

	sortField, err := feequery.ParseField(field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	sortDir, err := feequery.ParseDirection(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	repo, err := repository.NewSnapshotFeeRepository(context.Background(), dataset.NewFileSource(path))
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}
	svc := service.NewFeesService(repo, cfg.Notionals)

	q := feequery.Query{
		Text:     text,
		Notional: notional,
		Sort:     feequery.SortSpec{Field: sortField, Dir: sortDir},
	}

	switch format {
	case "csv":
		err = svc.ExportCSV(os.Stdout, q)
	case "json":
		err = writeJSON(svc, q)
	case "table":
		err = writeTable(svc, q)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		log.WithError(err).Fatal("Query failed")
	}
}

func writeJSON(svc *service.FeesService, q feequery.Query) error {
	res, err := svc.Query(q)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeTable(svc *service.FeesService, q feequery.Query) error {
	res, err := svc.Query(q)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "SYMBOL\tSOURCE\tMAKER %s\tTAKER %s\tLAST UPDATED\t\n", res.Query.Notional, res.Query.Notional)
	for _, row := range res.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", row.Symbol, row.Source, row.MakerText, row.TakerText, row.Updated)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nShowing %d of %d\n", res.Showing, svc.GetCounts()["latest"])
	return nil
}
