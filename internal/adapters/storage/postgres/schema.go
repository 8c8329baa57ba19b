package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema es idempotente; se aplica al arrancar si hay DB_DSN.
const schema = `
	CREATE TABLE IF NOT EXISTS estimations (
		id                   TEXT PRIMARY KEY,
		pond_age_days        DOUBLE PRECISION NOT NULL,
		food_intake_per_lakh DOUBLE PRECISION NOT NULL,
		season               TEXT NOT NULL,
		count_per_kg         DOUBLE PRECISION NOT NULL,
		source               TEXT NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_estimations_created_at ON estimations (created_at DESC);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
