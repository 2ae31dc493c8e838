package maintenance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultMigrationsTable is the bookkeeping table of golang-migrate style tools.
const DefaultMigrationsTable = "schema_migrations"

// CleanupResult summarizes a migration cleanup run.
type CleanupResult struct {
	Table    string `json:"table"`
	Criteria string `json:"criteria"`
	Matched  int64  `json:"matched"`
	Deleted  int64  `json:"deleted"`
	DryRun   bool   `json:"dry_run"`
}

// failedRowsCriteria picks the predicate that identifies failed rows from the table's columns.
// A dirty flag marks a migration that failed half way; a status column records
// failed and rolled back runs.
func failedRowsCriteria(columns map[string]bool) (string, error) {
	switch {
	case columns["dirty"]:
		return "dirty = true", nil
	case columns["status"]:
		return "status IN ('failed', 'rolled_back')", nil
	default:
		return "", fmt.Errorf("table has neither a dirty nor a status column")
	}
}

// CleanupMigrations deletes failed rows from the migration bookkeeping table.
// With dryRun set the rows are only counted.
func CleanupMigrations(ctx context.Context, pool *pgxpool.Pool, table string, dryRun bool) (*CleanupResult, error) {
	if table == "" {
		table = DefaultMigrationsTable
	}
	schema, name, err := qualifiedName(table)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2`,
		schema, name)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	columns := make(map[string]bool, len(names))
	for _, c := range names {
		columns[c] = true
	}

	criteria, err := failedRowsCriteria(columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}

	result := &CleanupResult{Table: table, Criteria: criteria, DryRun: dryRun}
	ident := quoteIdent(schema, name)

	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+ident+" WHERE "+criteria).Scan(&result.Matched); err != nil {
		return nil, fmt.Errorf("count failed migrations: %w", err)
	}
	if dryRun || result.Matched == 0 {
		return result, nil
	}

	tag, err := pool.Exec(ctx, "DELETE FROM "+ident+" WHERE "+criteria)
	if err != nil {
		return nil, fmt.Errorf("delete failed migrations: %w", err)
	}
	result.Deleted = tag.RowsAffected()
	return result, nil
}
