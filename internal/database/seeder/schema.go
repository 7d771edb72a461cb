package seeder

import (
	"context"
	"fmt"
	"strings"

	"skillswap/internal/database"
)

// requireColumns fails when table lacks any of columns.
func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
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

	existing := map[string]bool{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if !existing[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s missing columns %s", table, strings.Join(missing, ","))
	}
	return nil
}

// requireCheckValues fails when the CHECK constraints on table.column do not
// admit every value the seeder is about to insert.
func requireCheckValues(ctx context.Context, db database.DB, table, column string, values []string) error {
	rows, err := db.Query(
		ctx,
		`SELECT pg_get_constraintdef(c.oid)
		   FROM pg_constraint c
		   JOIN pg_class t ON t.oid = c.conrelid
		  WHERE t.relname = $1 AND c.contype = 'c'`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var defs []string
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return err
		}
		if strings.Contains(def, column) {
			defs = append(defs, def)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if missing := rejectedValues(defs, values); len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s.%s check rejects %s", table, column, strings.Join(missing, ","))
	}
	return nil
}

// rejectedValues returns the values not quoted in any of defs. No
// constraint means nothing is rejected.
func rejectedValues(defs []string, values []string) []string {
	if len(defs) == 0 {
		return nil
	}
	var out []string
	for _, v := range values {
		quoted := "'" + v + "'"
		ok := false
		for _, d := range defs {
			if strings.Contains(d, quoted) {
				ok = true
				break
			}
		}
		if !ok {
			out = append(out, v)
		}
	}
	return out
}
