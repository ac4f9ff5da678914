package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

// RefreshToken is a stored refresh token row
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// TokenRepository handles refresh token persistence
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Save persists a freshly issued refresh token
func (r *TokenRepository) Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	sql, args, err := psql.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(userID, token, expiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save refresh token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error saving refresh token: %w", err)
	}
	return nil
}

// Get retrieves a refresh token row. Revoked or expired tokens are returned
// as not found.
func (r *TokenRepository) Get(ctx context.Context, token string) (*RefreshToken, error) {
	sql, args, err := psql.Select("id", "user_id", "token", "expires_at", "revoked", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token, "revoked": false}).
		Where(squirrel.Expr("expires_at > NOW()")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get refresh token query: %w", err)
	}

	rt := &RefreshToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rt.ID, &rt.UserID, &rt.Token,
		&rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error getting refresh token: %w", err)
	}
	return rt, nil
}

// Revoke marks a refresh token unusable
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	sql, args, err := psql.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke refresh token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes every refresh token a user holds, used on
// password change and account disable
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	sql, args, err := psql.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"user_id": userID, "revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke user tokens query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking user refresh tokens: %w", err)
	}
	return nil
}

// DeleteExpired prunes expired and revoked refresh tokens
func (r *TokenRepository) DeleteExpired(ctx context.Context) error {
	sql, args, err := psql.Delete("refresh_tokens").
		Where(squirrel.Or{
			squirrel.Expr("expires_at <= NOW()"),
			squirrel.Eq{"revoked": true},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}
	return nil
}
