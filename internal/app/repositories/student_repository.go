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

// StudentRepository handles student profile database operations, including
// the owned education and certification rows.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

var studentColumns = []string{
	"id", "user_id", "first_name", "last_name", "mobile", "bio",
	"image_url", "resume_url", "skills", "created_at", "updated_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Mobile, &s.Bio,
		&s.ImageURL, &s.ResumeURL, &s.Skills, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a student profile row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := psql.Insert("students").
		Columns("user_id", "first_name", "last_name", "mobile", "bio", "image_url", "resume_url", "skills").
		Values(student.UserID, student.FirstName, student.LastName, student.Mobile,
			student.Bio, student.ImageURL, student.ResumeURL, student.Skills).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student profile by its id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves a student profile by its owning user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *StudentRepository) getBy(ctx context.Context, pred squirrel.Eq) (*models.Student, error) {
	sql, args, err := psql.Select(studentColumns...).
		From("students").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// FindIDByEmail resolves a student profile id from the owning user's email.
// Used by the bulk mark upload to match spreadsheet rows to students.
func (r *StudentRepository) FindIDByEmail(ctx context.Context, email string) (int64, error) {
	sql, args, err := psql.Select("s.id").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"u.email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build find student by email query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error finding student by email: %w", err)
	}
	return id, nil
}

// Update applies profile changes to a student row
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := psql.Update("students").
		SetMap(map[string]interface{}{
			"first_name": student.FirstName,
			"last_name":  student.LastName,
			"mobile":     student.Mobile,
			"bio":        student.Bio,
			"image_url":  student.ImageURL,
			"resume_url": student.ResumeURL,
			"skills":     student.Skills,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// --- Educations ---

var educationColumns = []string{
	"id", "student_id", "institution", "degree", "field_of_study", "start_year", "end_year", "grade",
}

// ListEducations retrieves a student's education entries
func (r *StudentRepository) ListEducations(ctx context.Context, studentID int64) ([]models.Education, error) {
	sql, args, err := psql.Select(educationColumns...).
		From("educations").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("start_year DESC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list educations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying educations: %w", err)
	}
	defer rows.Close()

	educations := []models.Education{}
	for rows.Next() {
		e := models.Education{}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Institution, &e.Degree,
			&e.FieldOfStudy, &e.StartYear, &e.EndYear, &e.Grade); err != nil {
			return nil, fmt.Errorf("error scanning education row: %w", err)
		}
		educations = append(educations, e)
	}
	return educations, rows.Err()
}

// CreateEducation inserts an education entry
func (r *StudentRepository) CreateEducation(ctx context.Context, e *models.Education) error {
	sql, args, err := psql.Insert("educations").
		Columns("student_id", "institution", "degree", "field_of_study", "start_year", "end_year", "grade").
		Values(e.StudentID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear, e.Grade).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create education query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("error creating education: %w", err)
	}
	return nil
}

// UpdateEducation updates an education entry owned by the student
func (r *StudentRepository) UpdateEducation(ctx context.Context, e *models.Education) error {
	sql, args, err := psql.Update("educations").
		SetMap(map[string]interface{}{
			"institution":    e.Institution,
			"degree":         e.Degree,
			"field_of_study": e.FieldOfStudy,
			"start_year":     e.StartYear,
			"end_year":       e.EndYear,
			"grade":          e.Grade,
		}).
		Where(squirrel.Eq{"id": e.ID, "student_id": e.StudentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update education query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating education: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEducationNotFound
	}
	return nil
}

// DeleteEducationsExcept removes a student's education rows whose ids are
// not in keepIDs. An empty keepIDs removes all of them.
func (r *StudentRepository) DeleteEducationsExcept(ctx context.Context, studentID int64, keepIDs []int64) error {
	del := psql.Delete("educations").Where(squirrel.Eq{"student_id": studentID})
	if len(keepIDs) > 0 {
		del = del.Where(squirrel.NotEq{"id": keepIDs})
	}
	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete educations query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting educations: %w", err)
	}
	return nil
}

// --- Certifications ---

var certificationColumns = []string{
	"id", "student_id", "name", "issuing_body", "issue_date", "certificate_url",
}

// ListCertifications retrieves a student's certification entries
func (r *StudentRepository) ListCertifications(ctx context.Context, studentID int64) ([]models.Certification, error) {
	sql, args, err := psql.Select(certificationColumns...).
		From("certifications").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list certifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying certifications: %w", err)
	}
	defer rows.Close()

	certifications := []models.Certification{}
	for rows.Next() {
		c := models.Certification{}
		if err := rows.Scan(&c.ID, &c.StudentID, &c.Name, &c.IssuingBody,
			&c.IssueDate, &c.CertificateURL); err != nil {
			return nil, fmt.Errorf("error scanning certification row: %w", err)
		}
		certifications = append(certifications, c)
	}
	return certifications, rows.Err()
}

// CreateCertification inserts a certification entry
func (r *StudentRepository) CreateCertification(ctx context.Context, c *models.Certification) error {
	sql, args, err := psql.Insert("certifications").
		Columns("student_id", "name", "issuing_body", "issue_date", "certificate_url").
		Values(c.StudentID, c.Name, c.IssuingBody, c.IssueDate, c.CertificateURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create certification query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("error creating certification: %w", err)
	}
	return nil
}

// UpdateCertification updates a certification entry owned by the student
func (r *StudentRepository) UpdateCertification(ctx context.Context, c *models.Certification) error {
	sql, args, err := psql.Update("certifications").
		SetMap(map[string]interface{}{
			"name":            c.Name,
			"issuing_body":    c.IssuingBody,
			"issue_date":      c.IssueDate,
			"certificate_url": c.CertificateURL,
		}).
		Where(squirrel.Eq{"id": c.ID, "student_id": c.StudentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update certification query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating certification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificationNotFound
	}
	return nil
}

// DeleteCertificationsExcept removes a student's certification rows whose
// ids are not in keepIDs. An empty keepIDs removes all of them.
func (r *StudentRepository) DeleteCertificationsExcept(ctx context.Context, studentID int64, keepIDs []int64) error {
	del := psql.Delete("certifications").Where(squirrel.Eq{"student_id": studentID})
	if len(keepIDs) > 0 {
		del = del.Where(squirrel.NotEq{"id": keepIDs})
	}
	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete certifications query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting certifications: %w", err)
	}
	return nil
}
