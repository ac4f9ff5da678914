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

// ApplicationRepository handles application and interview database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

var applicationColumns = []string{
	"a.id", "a.student_id", "a.job_id", "a.status", "a.cover_letter",
	"a.resume_url", "a.applied_at", "a.updated_at",
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{}
	err := row.Scan(&a.ID, &a.StudentID, &a.JobID, &a.Status, &a.CoverLetter,
		&a.ResumeURL, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an application. A second application by the same student to
// the same job trips the unique constraint and maps to ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := psql.Insert("applications").
		Columns("student_id", "job_id", "status", "cover_letter", "resume_url").
		Values(app.StudentID, app.JobID, app.Status, app.CoverLetter, app.ResumeURL).
		Suffix("RETURNING id, applied_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_student_job_key") {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).
			Int64("studentID", app.StudentID).
			Int64("jobID", app.JobID).
			Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by id
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := psql.Select(applicationColumns...).
		From("applications a").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return app, nil
}

// GetForSchool retrieves an application only if the job it targets belongs
// to the given school. Applications outside the school's jobs read as absent.
func (r *ApplicationRepository) GetForSchool(ctx context.Context, id, schoolID int64) (*models.Application, error) {
	sql, args, err := psql.Select(applicationColumns...).
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Where(squirrel.Eq{"a.id": id, "j.school_id": schoolID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application for school query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application for school: %w", err)
	}
	return app, nil
}

// ListByJob retrieves applications to a job with the applicant's name joined
// in, newest first
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64, page, pageSize int) ([]models.Application, int64, error) {
	pred := squirrel.Eq{"a.job_id": jobID}

	countSQL, countArgs, err := psql.Select("COUNT(*)").
		From("applications a").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	offset := (page - 1) * pageSize
	cols := append([]string{}, applicationColumns...)
	cols = append(cols, "s.id", "s.user_id", "s.first_name", "s.last_name",
		"s.mobile", "s.bio", "s.image_url", "s.resume_url", "s.skills",
		"s.created_at", "s.updated_at")
	sql, args, err := psql.Select(cols...).
		From("applications a").
		Join("students s ON s.id = a.student_id").
		Where(pred).
		OrderBy("a.applied_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		a := models.Application{Student: &models.Student{}}
		s := a.Student
		if err := rows.Scan(&a.ID, &a.StudentID, &a.JobID, &a.Status, &a.CoverLetter,
			&a.ResumeURL, &a.AppliedAt, &a.UpdatedAt,
			&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Mobile, &s.Bio,
			&s.ImageURL, &s.ResumeURL, &s.Skills, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

// ListByStudent retrieves a student's applications with the job and its
// category name joined in, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]models.Application, int64, error) {
	pred := squirrel.Eq{"a.student_id": studentID}

	countSQL, countArgs, err := psql.Select("COUNT(*)").
		From("applications a").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	offset := (page - 1) * pageSize
	cols := append([]string{}, applicationColumns...)
	cols = append(cols, jobColumns...)
	sql, args, err := psql.Select(cols...).
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		LeftJoin("categories c ON c.id = j.category_id").
		Where(pred).
		OrderBy("a.applied_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list student applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying student applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		a := models.Application{Job: &models.Job{}}
		j := a.Job
		if err := rows.Scan(&a.ID, &a.StudentID, &a.JobID, &a.Status, &a.CoverLetter,
			&a.ResumeURL, &a.AppliedAt, &a.UpdatedAt,
			&j.ID, &j.SchoolID, &j.CategoryID, &j.Title, &j.Location,
			&j.ApplicationEndAt, &j.SalaryMinLPA, &j.SalaryMaxLPA, &j.Description,
			&j.Responsibilities, &j.Requirements, &j.Status, &j.CreatedAt,
			&j.UpdatedAt, &j.CategoryName); err != nil {
			return nil, 0, fmt.Errorf("error scanning student application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

// UpdateStatus sets an application's status
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := psql.Update("applications").
		SetMap(map[string]interface{}{
			"status":     status,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// HasApplied reports whether the student already applied to the job
func (r *ApplicationRepository) HasApplied(ctx context.Context, studentID, jobID int64) (bool, error) {
	sql, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID, "job_id": jobID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build has applied query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

// CountByStudent returns per-status application counts for a student's
// dashboard
func (r *ApplicationRepository) CountByStudent(ctx context.Context, studentID int64) (map[models.ApplicationStatus]int64, error) {
	sql, args, err := psql.Select("status", "COUNT(*)").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting student applications: %w", err)
	}
	defer rows.Close()

	counts := map[models.ApplicationStatus]int64{}
	for rows.Next() {
		var status models.ApplicationStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning application count row: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountBySchool returns per-status application counts across all of a
// school's jobs
func (r *ApplicationRepository) CountBySchool(ctx context.Context, schoolID int64) (map[models.ApplicationStatus]int64, error) {
	sql, args, err := psql.Select("a.status", "COUNT(*)").
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Where(squirrel.Eq{"j.school_id": schoolID}).
		GroupBy("a.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by school query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting school applications: %w", err)
	}
	defer rows.Close()

	counts := map[models.ApplicationStatus]int64{}
	for rows.Next() {
		var status models.ApplicationStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning application count row: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// --- Interviews ---

// UpsertInterview inserts or reschedules the interview for an application.
// Interviews are unique per application, so a second schedule call updates
// the existing row.
func (r *ApplicationRepository) UpsertInterview(ctx context.Context, iv *models.Interview) error {
	sql, args, err := psql.Insert("interviews").
		Columns("application_id", "title", "interview_date", "start_time", "end_time", "location").
		Values(iv.ApplicationID, iv.Title, iv.Date, iv.StartTime, iv.EndTime, iv.Location).
		Suffix(`ON CONFLICT ON CONSTRAINT interviews_application_id_key
			DO UPDATE SET title = EXCLUDED.title,
				interview_date = EXCLUDED.interview_date,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				location = EXCLUDED.location,
				updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert interview query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("applicationID", iv.ApplicationID).Msg("Error executing upsert interview query")
		return fmt.Errorf("error upserting interview: %w", err)
	}
	return nil
}

// GetInterview retrieves the interview scheduled for an application, if any.
// Returns nil without error when none exists.
func (r *ApplicationRepository) GetInterview(ctx context.Context, applicationID int64) (*models.Interview, error) {
	sql, args, err := psql.Select("id", "application_id", "title", "interview_date",
		"start_time", "end_time", "location", "created_at", "updated_at").
		From("interviews").
		Where(squirrel.Eq{"application_id": applicationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get interview query: %w", err)
	}

	iv := &models.Interview{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&iv.ID, &iv.ApplicationID, &iv.Title,
		&iv.Date, &iv.StartTime, &iv.EndTime, &iv.Location, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting interview: %w", err)
	}
	return iv, nil
}
