package seeder

import (
	"context"
	"fmt"

	"skill-matrix/internal/database"
)

// ensureCatalogTable verifies the catalog relation carries the columns a
// seeder is about to write, so a half-applied migration fails loudly here
// instead of as a bare insert error.
func ensureCatalogTable(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("catalog schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
