package repositories

import (
	"context"
	"encoding/json"
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

// CoreSkillRepository handles core skill definitions and the per-student
// assessment rows keyed on them. Sub skill lists and mark maps are stored
// as JSONB.
type CoreSkillRepository struct {
	db *pgxpool.Pool
}

// NewCoreSkillRepository creates a new CoreSkillRepository
func NewCoreSkillRepository(db *pgxpool.Pool) *CoreSkillRepository {
	return &CoreSkillRepository{db: db}
}

// Create inserts a core skill definition
func (r *CoreSkillRepository) Create(ctx context.Context, skill *models.CoreSkill) error {
	subSkills, err := json.Marshal(skill.SubSkills)
	if err != nil {
		return fmt.Errorf("failed to encode sub skills: %w", err)
	}

	sql, args, err := psql.Insert("core_skills").
		Columns("name", "sub_skills").
		Values(skill.Name, subSkills).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create core skill query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&skill.ID, &skill.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCoreSkillAlreadyExists
		}
		logger.Error().Err(err).Str("name", skill.Name).Msg("Error executing create core skill query")
		return fmt.Errorf("error creating core skill: %w", err)
	}
	return nil
}

// GetByID retrieves a core skill by id
func (r *CoreSkillRepository) GetByID(ctx context.Context, id int64) (*models.CoreSkill, error) {
	sql, args, err := psql.Select("id", "name", "sub_skills", "created_at").
		From("core_skills").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get core skill query: %w", err)
	}

	skill, err := scanCoreSkill(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCoreSkillNotFound
		}
		return nil, fmt.Errorf("error getting core skill: %w", err)
	}
	return skill, nil
}

func scanCoreSkill(row pgx.Row) (*models.CoreSkill, error) {
	s := &models.CoreSkill{}
	var subSkills []byte
	if err := row.Scan(&s.ID, &s.Name, &subSkills, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subSkills, &s.SubSkills); err != nil {
		return nil, fmt.Errorf("failed to decode sub skills: %w", err)
	}
	return s, nil
}

// List retrieves all core skills, alphabetically
func (r *CoreSkillRepository) List(ctx context.Context) ([]models.CoreSkill, error) {
	sql, args, err := psql.Select("id", "name", "sub_skills", "created_at").
		From("core_skills").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list core skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying core skills: %w", err)
	}
	defer rows.Close()

	skills := []models.CoreSkill{}
	for rows.Next() {
		s := models.CoreSkill{}
		var subSkills []byte
		if err := rows.Scan(&s.ID, &s.Name, &subSkills, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning core skill row: %w", err)
		}
		if err := json.Unmarshal(subSkills, &s.SubSkills); err != nil {
			return nil, fmt.Errorf("failed to decode sub skills: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// Update replaces a core skill's name and sub skill list
func (r *CoreSkillRepository) Update(ctx context.Context, skill *models.CoreSkill) error {
	subSkills, err := json.Marshal(skill.SubSkills)
	if err != nil {
		return fmt.Errorf("failed to encode sub skills: %w", err)
	}

	sql, args, err := psql.Update("core_skills").
		SetMap(map[string]interface{}{
			"name":       skill.Name,
			"sub_skills": subSkills,
		}).
		Where(squirrel.Eq{"id": skill.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update core skill query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCoreSkillAlreadyExists
		}
		return fmt.Errorf("error updating core skill: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCoreSkillNotFound
	}
	return nil
}

// Delete removes a core skill and, through cascades, its assessments and
// category associations
func (r *CoreSkillRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("core_skills").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete core skill query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting core skill: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCoreSkillNotFound
	}
	return nil
}

// --- Assessments ---

// UpsertAssessment inserts or replaces a student's marks for a core skill.
// The stored total is recomputed from the submitted marks on every write.
func (r *CoreSkillRepository) UpsertAssessment(ctx context.Context, a *models.SkillAssessment) error {
	marks, err := json.Marshal(a.SubSkillMarks)
	if err != nil {
		return fmt.Errorf("failed to encode sub skill marks: %w", err)
	}
	a.Total = models.MarksTotal(a.SubSkillMarks)

	sql, args, err := psql.Insert("student_core_skill_assessments").
		Columns("student_id", "core_skill_id", "sub_skill_marks", "total").
		Values(a.StudentID, a.CoreSkillID, marks, a.Total).
		Suffix(`ON CONFLICT ON CONSTRAINT assessments_student_skill_key
			DO UPDATE SET sub_skill_marks = EXCLUDED.sub_skill_marks,
				total = EXCLUDED.total, updated_at = NOW()
			RETURNING id, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert assessment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.UpdatedAt); err != nil {
		logger.Error().Err(err).
			Int64("studentID", a.StudentID).
			Int64("coreSkillID", a.CoreSkillID).
			Msg("Error executing upsert assessment query")
		return fmt.Errorf("error upserting assessment: %w", err)
	}
	return nil
}

// ListAssessmentsByStudent retrieves a student's assessments with the core
// skill name joined in
func (r *CoreSkillRepository) ListAssessmentsByStudent(ctx context.Context, studentID int64) ([]models.SkillAssessment, error) {
	sql, args, err := psql.Select("a.id", "a.student_id", "a.core_skill_id",
		"a.sub_skill_marks", "a.total", "a.updated_at", "cs.name").
		From("student_core_skill_assessments a").
		Join("core_skills cs ON cs.id = a.core_skill_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("cs.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list assessments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying assessments: %w", err)
	}
	defer rows.Close()

	assessments := []models.SkillAssessment{}
	for rows.Next() {
		a := models.SkillAssessment{}
		var marks []byte
		var skillName string
		if err := rows.Scan(&a.ID, &a.StudentID, &a.CoreSkillID, &marks,
			&a.Total, &a.UpdatedAt, &skillName); err != nil {
			return nil, fmt.Errorf("error scanning assessment row: %w", err)
		}
		if err := json.Unmarshal(marks, &a.SubSkillMarks); err != nil {
			return nil, fmt.Errorf("failed to decode sub skill marks: %w", err)
		}
		a.CoreSkillName = &skillName
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
