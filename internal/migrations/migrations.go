// Package migrations embeds the goose migrations for the ClickHouse tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
