package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// JobRepository handles job posting database operations
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

var jobColumns = []string{
	"j.id", "j.school_id", "j.category_id", "j.title", "j.location",
	"j.application_end_at", "j.salary_min_lpa", "j.salary_max_lpa",
	"j.description", "j.responsibilities", "j.requirements", "j.status",
	"j.created_at", "j.updated_at", "c.name AS category_name",
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return psql.Select(jobColumns...).
		From("jobs j").
		LeftJoin("categories c ON c.id = j.category_id")
}

func scanJob(row pgx.Row) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.SchoolID, &j.CategoryID, &j.Title, &j.Location,
		&j.ApplicationEndAt, &j.SalaryMinLPA, &j.SalaryMaxLPA, &j.Description,
		&j.Responsibilities, &j.Requirements, &j.Status, &j.CreatedAt,
		&j.UpdatedAt, &j.CategoryName)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Create inserts a job posting
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	sql, args, err := psql.Insert("jobs").
		Columns("school_id", "category_id", "title", "location", "application_end_at",
			"salary_min_lpa", "salary_max_lpa", "description", "responsibilities",
			"requirements", "status").
		Values(job.SchoolID, job.CategoryID, job.Title, job.Location, job.ApplicationEndAt,
			job.SalaryMinLPA, job.SalaryMaxLPA, job.Description, job.Responsibilities,
			job.Requirements, job.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create job query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", job.SchoolID).Msg("Error executing create job query")
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetByID retrieves a job with its category name
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.selectJobs().
		Where(squirrel.Eq{"j.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job, err := scanJob(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error getting job: %w", err)
	}
	return job, nil
}

// ListBySchool retrieves a school's jobs newest first
func (r *JobRepository) ListBySchool(ctx context.Context, schoolID int64, page, pageSize int) ([]models.Job, int64, error) {
	return r.list(ctx, squirrel.Eq{"j.school_id": schoolID}, page, pageSize)
}

// ListOpen retrieves open jobs matching the filter, newest first. Only jobs
// whose application window has not passed are returned.
func (r *JobRepository) ListOpen(ctx context.Context, filter dto.JobFilter, page, pageSize int) ([]models.Job, int64, error) {
	pred := squirrel.And{
		squirrel.Eq{"j.status": models.JobStatusOpen},
		squirrel.Expr("j.application_end_at >= NOW()"),
	}
	if filter.CategoryID != nil {
		pred = append(pred, squirrel.Eq{"j.category_id": *filter.CategoryID})
	}
	if filter.Location != "" {
		pred = append(pred, squirrel.ILike{"j.location": "%" + filter.Location + "%"})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		pred = append(pred, squirrel.Or{
			squirrel.ILike{"j.title": pattern},
			squirrel.ILike{"j.description": pattern},
		})
	}
	return r.list(ctx, pred, page, pageSize)
}

func (r *JobRepository) list(ctx context.Context, pred squirrel.Sqlizer, page, pageSize int) ([]models.Job, int64, error) {
	countSQL, countArgs, err := psql.Select("COUNT(*)").
		From("jobs j").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting jobs: %w", err)
	}

	offset := (page - 1) * pageSize
	sql, args, err := r.selectJobs().
		Where(pred).
		OrderBy("j.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j := models.Job{}
		if err := rows.Scan(&j.ID, &j.SchoolID, &j.CategoryID, &j.Title, &j.Location,
			&j.ApplicationEndAt, &j.SalaryMinLPA, &j.SalaryMaxLPA, &j.Description,
			&j.Responsibilities, &j.Requirements, &j.Status, &j.CreatedAt,
			&j.UpdatedAt, &j.CategoryName); err != nil {
			return nil, 0, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// Update applies changes to a job owned by the given school
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	sql, args, err := psql.Update("jobs").
		SetMap(map[string]interface{}{
			"category_id":        job.CategoryID,
			"title":              job.Title,
			"location":           job.Location,
			"application_end_at": job.ApplicationEndAt,
			"salary_min_lpa":     job.SalaryMinLPA,
			"salary_max_lpa":     job.SalaryMaxLPA,
			"description":        job.Description,
			"responsibilities":   job.Responsibilities,
			"requirements":       job.Requirements,
			"updated_at":         squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": job.ID, "school_id": job.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update job query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// UpdateStatus opens or closes a job owned by the given school
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID, schoolID int64, status models.JobStatus) error {
	sql, args, err := psql.Update("jobs").
		SetMap(map[string]interface{}{
			"status":     status,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": jobID, "school_id": schoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update job status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating job status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete removes a job owned by the given school
func (r *JobRepository) Delete(ctx context.Context, jobID, schoolID int64) error {
	sql, args, err := psql.Delete("jobs").
		Where(squirrel.Eq{"id": jobID, "school_id": schoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// CountBySchool returns total and open job counts for a school's dashboard
func (r *JobRepository) CountBySchool(ctx context.Context, schoolID int64) (total int64, open int64, err error) {
	sql, args, err := psql.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'OPEN')").
		From("jobs").
		Where(squirrel.Eq{"school_id": schoolID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build count jobs by school query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total, &open); err != nil {
		return 0, 0, fmt.Errorf("error counting jobs by school: %w", err)
	}
	return total, open, nil
}
