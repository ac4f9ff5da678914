package models

import "time"

// MaxSubSkills is the admin-create rule limit on sub skills per core skill.
const MaxSubSkills = 4

// Category defines a job category based on the 'categories' table.
// Core skills are attached through the category_core_skills join table.
type Category struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	CoreSkillIDs []int64   `json:"coreSkillIds"` // Join table, no db tag
}

// CoreSkill defines an admin-defined competency based on the 'core_skills'
// table. SubSkills is the fixed list of graded component names.
type CoreSkill struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SubSkills []string  `json:"subSkills" db:"sub_skills"` // JSONB
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SkillAssessment defines a graded core skill for a student, based on the
// 'student_core_skill_assessments' table. Unique per (student, core skill).
// SubSkillMarks keys are a subset of the core skill's sub skill names; Total
// is derived as the sum of marks and recomputed on every upsert.
type SkillAssessment struct {
	ID            int64          `json:"id" db:"id"`
	StudentID     int64          `json:"studentId" db:"student_id"`
	CoreSkillID   int64          `json:"coreSkillId" db:"core_skill_id"`
	SubSkillMarks map[string]int `json:"subSkillMarks" db:"sub_skill_marks"` // JSONB
	Total         int            `json:"total" db:"total"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`

	CoreSkillName *string `json:"coreSkillName,omitempty"` // Joined column, no db tag
}

// MarksTotal sums a marks map; used to derive SkillAssessment.Total.
func MarksTotal(marks map[string]int) int {
	total := 0
	for _, m := range marks {
		total += m
	}
	return total
}
