package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"prawn-monitoring/internal/domain/estimation"
)

type EstimationsRepo struct {
	db *sql.DB
}

func NewEstimationsRepo(db *sql.DB) *EstimationsRepo {
	return &EstimationsRepo{db: db}
}

func (r *EstimationsRepo) Create(ctx context.Context, e estimation.Estimation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO estimations (
			id,
			pond_age_days, food_intake_per_lakh, season,
			count_per_kg, source,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		e.ID,
		e.Input.PondAgeDays,
		e.Input.FoodIntakePerLakh,
		string(e.Input.Season),
		e.Result.CountPerKg,
		string(e.Source),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert estimation: %w", err)
	}
	return nil
}

func (r *EstimationsRepo) List(ctx context.Context, limit int) ([]estimation.Estimation, error) {
	if limit <= 0 {
		limit = estimation.DefaultHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id,
			pond_age_days, food_intake_per_lakh, season,
			count_per_kg, source,
			created_at
		FROM estimations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list estimations: %w", err)
	}
	defer rows.Close()

	out := make([]estimation.Estimation, 0)
	for rows.Next() {
		var (
			e      estimation.Estimation
			season string
			source string
		)
		if err := rows.Scan(
			&e.ID,
			&e.Input.PondAgeDays,
			&e.Input.FoodIntakePerLakh,
			&season,
			&e.Result.CountPerKg,
			&source,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Input.Season = estimation.Season(season)
		e.Source = estimation.Source(source)
		e.CreatedAt = e.CreatedAt.UTC()

		out = append(out, e)
	}

	return out, rows.Err()
}
