package main

import (
	"database/sql"

	_ "github.com/ClickHouse/clickhouse-go/v2" // ClickHouse driver
	"github.com/pressly/goose/v3"

	"github.com/navid-fn/feeboard/configs"
	"github.com/navid-fn/feeboard/internal/logger"
	"github.com/navid-fn/feeboard/internal/migrations"
)

func main() {
	cfg := configs.AppLoad()
	log := logger.New(cfg.LogLevel)

	db, err := sql.Open("clickhouse", cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("Failed to ping database")
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(log)
	if err := goose.SetDialect("clickhouse"); err != nil {
		log.WithError(err).Fatal("Goose: failed to set dialect")
	}

	log.Info("Running database migrations...")
	if err := goose.Up(db, "."); err != nil {
		log.WithError(err).Fatal("Goose migration failed")
	}

	log.Info("Migrations completed successfully")
}
