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
	"github.com/campuslink/jobportal/internal/pkg/dberrors"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// CategoryRepository handles job category database operations
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category and its core skill associations
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := psql.Insert("categories").
		Columns("name").
		Values(category.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create category query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		logger.Error().Err(err).Str("name", category.Name).Msg("Error executing create category query")
		return fmt.Errorf("error creating category: %w", err)
	}

	if err := r.setCoreSkillsTx(ctx, tx, category.ID, category.CoreSkillIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID retrieves a category with its core skill ids
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	sql, args, err := psql.Select("id", "name", "created_at").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}

	c := &models.Category{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error getting category: %w", err)
	}

	c.CoreSkillIDs, err = r.getCoreSkillIDs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all categories with their core skill ids, alphabetically
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	sql, args, err := psql.Select("id", "name", "created_at").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying categories: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].CoreSkillIDs, err = r.getCoreSkillIDs(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return categories, nil
}

// Update renames a category and replaces its core skill associations
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := psql.Update("categories").
		Set("name", category.Name).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error updating category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	if err := r.setCoreSkillsTx(ctx, tx, category.ID, category.CoreSkillIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a category. Jobs referencing it keep running with a null
// category via the schema's ON DELETE SET NULL.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) getCoreSkillIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	sql, args, err := psql.Select("core_skill_id").
		From("category_core_skills").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("core_skill_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category core skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying category core skills: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning core skill id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CategoryRepository) setCoreSkillsTx(ctx context.Context, tx pgx.Tx, categoryID int64, coreSkillIDs []int64) error {
	delSQL, delArgs, err := psql.Delete("category_core_skills").
		Where(squirrel.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category core skills query: %w", err)
	}
	if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("error clearing category core skills: %w", err)
	}

	if len(coreSkillIDs) == 0 {
		return nil
	}

	ins := psql.Insert("category_core_skills").Columns("category_id", "core_skill_id")
	for _, id := range coreSkillIDs {
		ins = ins.Values(categoryID, id)
	}
	insSQL, insArgs, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert category core skills query: %w", err)
	}
	if _, err := tx.Exec(ctx, insSQL, insArgs...); err != nil {
		return fmt.Errorf("error inserting category core skills: %w", err)
	}
	return nil
}
