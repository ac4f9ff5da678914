package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// SettingRepository handles key/value settings. Email templates and the sub
// skill mark limit live here.
type SettingRepository struct {
	db *pgxpool.Pool
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key
func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	sql, args, err := psql.Select("key", "value", "updated_at").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get setting query: %w", err)
	}

	s := &models.Setting{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSettingNotFound
		}
		return nil, fmt.Errorf("error getting setting: %w", err)
	}
	return s, nil
}

// GetInt retrieves an integer setting, falling back to def when the row is
// missing or does not parse
func (r *SettingRepository) GetInt(ctx context.Context, key string, def int) (int, error) {
	s, err := r.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			return def, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(s.Value)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", s.Value).Msg("Setting value is not an integer, using default")
		return def, nil
	}
	return n, nil
}

// Upsert writes a setting value, inserting the row if absent
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	sql, args, err := psql.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix(`ON CONFLICT (key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert setting query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error upserting setting: %w", err)
	}
	return nil
}
