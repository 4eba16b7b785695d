package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"credscore/internal/models"
	"credscore/internal/schema"
)

// referenceColumns lists the reference_data columns in insert order. The
// feature columns keep their original upper-case names, so they are quoted
// identifiers in Postgres.
var referenceColumns = append([]string{"TARGET"}, schema.FeatureOrder[:]...)

// ReplaceReferenceData truncates and bulk-loads the reference dataset used as
// the drift baseline.
func (d *DB) ReplaceReferenceData(ctx context.Context, rows []models.ReferenceRow) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reference load: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE reference_data`); err != nil {
		return fmt.Errorf("truncate reference_data: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"reference_data"},
		referenceColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			values := make([]any, 0, len(referenceColumns))
			values = append(values, r.Target)
			for _, name := range schema.FeatureOrder {
				v, _ := r.Features.Get(name)
				if name == "DAYS_BIRTH" {
					values = append(values, int(v))
					continue
				}
				values = append(values, v)
			}
			return values, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy reference_data: %w", err)
	}

	return tx.Commit(ctx)
}

// CountReferenceRows returns the number of rows in the reference dataset.
func (d *DB) CountReferenceRows(ctx context.Context) (int64, error) {
	var count int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reference_data`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reference_data: %w", err)
	}
	return count, nil
}
