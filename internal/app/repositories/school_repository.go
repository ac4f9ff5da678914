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
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// SchoolRepository handles school profile database operations
type SchoolRepository struct {
	db *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{db: db}
}

var schoolColumns = []string{
	"id", "user_id", "name", "bio", "website", "address", "city", "state",
	"pincode", "logo_url", "created_at", "updated_at",
}

func scanSchool(row pgx.Row) (*models.School, error) {
	s := &models.School{}
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Bio, &s.Website, &s.Address,
		&s.City, &s.State, &s.Pincode, &s.LogoURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a school profile row
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	sql, args, err := psql.Insert("schools").
		Columns("user_id", "name", "bio", "website", "address", "city", "state", "pincode", "logo_url").
		Values(school.UserID, school.Name, school.Bio, school.Website, school.Address,
			school.City, school.State, school.Pincode, school.LogoURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create school query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&school.ID, &school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", school.UserID).Msg("Error executing create school query")
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// GetByID retrieves a school profile by its id
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves a school profile by its owning user
func (r *SchoolRepository) GetByUserID(ctx context.Context, userID int64) (*models.School, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *SchoolRepository) getBy(ctx context.Context, pred squirrel.Eq) (*models.School, error) {
	sql, args, err := psql.Select(schoolColumns...).
		From("schools").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get school query: %w", err)
	}

	school, err := scanSchool(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		logger.Error().Err(err).Msg("Error scanning school row")
		return nil, fmt.Errorf("error getting school: %w", err)
	}
	return school, nil
}

// Update applies profile changes to a school row
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	sql, args, err := psql.Update("schools").
		SetMap(map[string]interface{}{
			"name":       school.Name,
			"bio":        school.Bio,
			"website":    school.Website,
			"address":    school.Address,
			"city":       school.City,
			"state":      school.State,
			"pincode":    school.Pincode,
			"logo_url":   school.LogoURL,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": school.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update school query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", school.ID).Msg("Error executing update school query")
		return fmt.Errorf("error updating school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// SetCategories replaces the school's category associations
func (r *SchoolRepository) SetCategories(ctx context.Context, schoolID int64, categoryIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	delSQL, delArgs, err := psql.Delete("school_categories").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete school categories query: %w", err)
	}
	if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("error clearing school categories: %w", err)
	}

	if len(categoryIDs) > 0 {
		ins := psql.Insert("school_categories").Columns("school_id", "category_id")
		for _, id := range categoryIDs {
			ins = ins.Values(schoolID, id)
		}
		insSQL, insArgs, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert school categories query: %w", err)
		}
		if _, err := tx.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("error inserting school categories: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetCategories retrieves the categories associated with a school
func (r *SchoolRepository) GetCategories(ctx context.Context, schoolID int64) ([]models.Category, error) {
	sql, args, err := psql.Select("c.id", "c.name", "c.created_at").
		From("categories c").
		Join("school_categories sc ON sc.category_id = c.id").
		Where(squirrel.Eq{"sc.school_id": schoolID}).
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get school categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying school categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c := models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
