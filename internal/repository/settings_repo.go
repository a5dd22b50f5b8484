package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSettings returns nil when the store has never saved its settings.
func (r *SettingsRepo) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	var (
		s       models.StoreSettings
		minDays sql.NullInt64
	)

	query := `
		SELECT min_days, default_days, excluded_dates, blackout_ranges
		FROM delivery_settings
		WHERE id = 1
	`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&minDays,
		pq.Array(&s.DefaultDays),
		pq.Array(&s.ExcludedDates),
		pq.Array(&s.BlackoutRanges),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select settings: %w", err)
	}
	if minDays.Valid {
		v := int(minDays.Int64)
		s.MinDays = &v
	}

	categories, err := r.getCategoryDays(ctx)
	if err != nil {
		return nil, err
	}
	s.CategoryDays = categories

	return &s, nil
}

func (r *SettingsRepo) getCategoryDays(ctx context.Context) ([]models.CategoryDays, error) {
	query := `SELECT category_id, days FROM delivery_category_days ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select category days: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryDays
	for rows.Next() {
		var cd models.CategoryDays
		if err := rows.Scan(&cd.Category, pq.Array(&cd.Days)); err != nil {
			return nil, fmt.Errorf("scan category days: %w", err)
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// SaveSettings replaces the stored settings in one transaction.
func (r *SettingsRepo) SaveSettings(ctx context.Context, s models.StoreSettings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var minDays sql.NullInt64
	if s.MinDays != nil {
		minDays = sql.NullInt64{Int64: int64(*s.MinDays), Valid: true}
	}

	upsert := `
		INSERT INTO delivery_settings (id, min_days, default_days, excluded_dates, blackout_ranges, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET min_days = EXCLUDED.min_days,
		    default_days = EXCLUDED.default_days,
		    excluded_dates = EXCLUDED.excluded_dates,
		    blackout_ranges = EXCLUDED.blackout_ranges,
		    updated_at = NOW()
	`
	_, err = tx.ExecContext(ctx, upsert,
		minDays,
		pq.Array(nonNil(s.DefaultDays)),
		pq.Array(nonNil(s.ExcludedDates)),
		pq.Array(nonNil(s.BlackoutRanges)),
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivery_category_days`); err != nil {
		return fmt.Errorf("clear category days: %w", err)
	}
	stmt := `INSERT INTO delivery_category_days (position, category_id, days) VALUES ($1, $2, $3)`
	for i, cd := range s.CategoryDays {
		if _, err := tx.ExecContext(ctx, stmt, i, cd.Category, pq.Array(cd.Days)); err != nil {
			return fmt.Errorf("insert category days: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
