package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

// HelpRequestRepository handles help desk ticket database operations
type HelpRequestRepository struct {
	db *pgxpool.Pool
}

// NewHelpRequestRepository creates a new HelpRequestRepository
func NewHelpRequestRepository(db *pgxpool.Pool) *HelpRequestRepository {
	return &HelpRequestRepository{db: db}
}

// Create inserts a help request
func (r *HelpRequestRepository) Create(ctx context.Context, h *models.HelpRequest) error {
	sql, args, err := psql.Insert("help_requests").
		Columns("user_id", "subject", "message", "status").
		Values(h.UserID, h.Subject, h.Message, h.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create help request query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return fmt.Errorf("error creating help request: %w", err)
	}
	return nil
}

// GetByID retrieves a help request
func (r *HelpRequestRepository) GetByID(ctx context.Context, id int64) (*models.HelpRequest, error) {
	sql, args, err := psql.Select("id", "user_id", "subject", "message", "status",
		"created_at", "updated_at").
		From("help_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get help request query: %w", err)
	}

	h := &models.HelpRequest{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&h.ID, &h.UserID, &h.Subject,
		&h.Message, &h.Status, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHelpRequestNotFound
		}
		return nil, fmt.Errorf("error getting help request: %w", err)
	}
	return h, nil
}

// ListByUser retrieves the help requests submitted by a user, newest first
func (r *HelpRequestRepository) ListByUser(ctx context.Context, userID int64) ([]models.HelpRequest, error) {
	sql, args, err := psql.Select("id", "user_id", "subject", "message", "status",
		"created_at", "updated_at").
		From("help_requests").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list help requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying help requests: %w", err)
	}
	defer rows.Close()

	requests := []models.HelpRequest{}
	for rows.Next() {
		h := models.HelpRequest{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Subject, &h.Message, &h.Status,
			&h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning help request row: %w", err)
		}
		requests = append(requests, h)
	}
	return requests, rows.Err()
}

// List retrieves help requests across all users with the submitter joined
// in, optionally filtered by status, newest first
func (r *HelpRequestRepository) List(ctx context.Context, status models.HelpRequestStatus, page, pageSize int) ([]models.HelpRequest, int64, error) {
	pred := squirrel.And{}
	if status != "" {
		pred = append(pred, squirrel.Eq{"h.status": status})
	}

	countSelect := psql.Select("COUNT(*)").From("help_requests h")
	if len(pred) > 0 {
		countSelect = countSelect.Where(pred)
	}
	countSQL, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count help requests query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting help requests: %w", err)
	}

	offset := (page - 1) * pageSize
	listSelect := psql.Select("h.id", "h.user_id", "h.subject", "h.message", "h.status",
		"h.created_at", "h.updated_at", "u.name", "u.email", "u.role_type").
		From("help_requests h").
		Join("users u ON u.id = h.user_id").
		OrderBy("h.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))
	if len(pred) > 0 {
		listSelect = listSelect.Where(pred)
	}
	sql, args, err := listSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list help requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying help requests: %w", err)
	}
	defer rows.Close()

	requests := []models.HelpRequest{}
	for rows.Next() {
		h := models.HelpRequest{User: &models.User{}}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Subject, &h.Message, &h.Status,
			&h.CreatedAt, &h.UpdatedAt, &h.User.Name, &h.User.Email, &h.User.RoleType); err != nil {
			return nil, 0, fmt.Errorf("error scanning help request row: %w", err)
		}
		h.User.ID = h.UserID
		requests = append(requests, h)
	}
	return requests, total, rows.Err()
}

// UpdateStatus marks a help request open or resolved
func (r *HelpRequestRepository) UpdateStatus(ctx context.Context, id int64, status models.HelpRequestStatus) error {
	sql, args, err := psql.Update("help_requests").
		SetMap(map[string]interface{}{
			"status":     status,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update help request query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating help request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHelpRequestNotFound
	}
	return nil
}
