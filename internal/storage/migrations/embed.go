package migrations

import "embed"

// PostgresFS embeds the input-table schema for PostgreSQL.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds the metric-table schema for ClickHouse.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
