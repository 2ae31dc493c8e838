package maintenance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TableRLS reports the row level security flags of one table.
type TableRLS struct {
	Name    string `json:"name"`
	Enabled bool   `json:"rls_enabled"`
	Forced  bool   `json:"rls_forced"`
}

const rlsStatusSQL = `
SELECT c.relname, c.relrowsecurity, c.relforcerowsecurity
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1 AND c.relkind IN ('r', 'p')
ORDER BY c.relname`

// RLSStatus lists the ordinary and partitioned tables of schema with their RLS flags.
func RLSStatus(ctx context.Context, pool *pgxpool.Pool, schema string) ([]TableRLS, error) {
	rows, err := pool.Query(ctx, rlsStatusSQL, schema)
	if err != nil {
		return nil, fmt.Errorf("query rls status: %w", err)
	}
	tables, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TableRLS, error) {
		var t TableRLS
		err := row.Scan(&t.Name, &t.Enabled, &t.Forced)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan rls status: %w", err)
	}
	return tables, nil
}

// MissingRLS returns the names of tables without row level security enabled.
func MissingRLS(tables []TableRLS) []string {
	var missing []string
	for _, t := range tables {
		if !t.Enabled {
			missing = append(missing, t.Name)
		}
	}
	return missing
}
