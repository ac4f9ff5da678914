package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification row
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	sql, args, err := psql.Insert("notifications").
		Columns("user_id", "message", "type", "link").
		Values(n.UserID, n.Message, n.Type, n.Link).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create notification query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", n.UserID).Msg("Error executing create notification query")
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's notifications newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error) {
	pred := squirrel.Eq{"user_id": userID}

	countSQL, countArgs, err := psql.Select("COUNT(*)").
		From("notifications").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count notifications query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	offset := (page - 1) * pageSize
	sql, args, err := psql.Select("id", "user_id", "message", "type", "link", "is_read", "created_at").
		From("notifications").
		Where(pred).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n := models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Link,
			&n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marks one of the user's notifications as read. Marking someone
// else's notification reads as absent.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	sql, args, err := psql.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	sql, args, err := psql.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark all read query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}
