package models

import "time"

// Job defines the job posting model based on the 'jobs' table
type Job struct {
	ID               int64     `json:"id" db:"id"`
	SchoolID         int64     `json:"schoolId" db:"school_id"`
	CategoryID       *int64    `json:"categoryId,omitempty" db:"category_id"` // nullable, category delete keeps the job
	Title            string    `json:"title" db:"title"`
	Location         string    `json:"location" db:"location"`
	ApplicationEndAt time.Time `json:"applicationEndDate" db:"application_end_at"`
	SalaryMinLPA     *float64  `json:"salaryMinLpa,omitempty" db:"salary_min_lpa"`
	SalaryMaxLPA     *float64  `json:"salaryMaxLpa,omitempty" db:"salary_max_lpa"`
	Description      string    `json:"description" db:"description"`
	Responsibilities *string   `json:"responsibilities,omitempty" db:"responsibilities"`
	Requirements     *string   `json:"requirements,omitempty" db:"requirements"`
	Status           JobStatus `json:"status" db:"status"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	School       *School `json:"school,omitempty"`   // Relation, no db tag
	CategoryName *string `json:"categoryName,omitempty"` // Joined column, no db tag
}
