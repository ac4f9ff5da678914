package models

import "time"

// Student defines the student profile model based on the 'students' table.
// A student row always belongs to exactly one user with the STUDENT role.
type Student struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	ResumeURL *string   `json:"resumeUrl,omitempty" db:"resume_url"`
	Skills    *string   `json:"skills,omitempty" db:"skills"` // free-text, comma separated
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// Education defines an education entry owned by a student
type Education struct {
	ID           int64   `json:"id" db:"id"`
	StudentID    int64   `json:"studentId" db:"student_id"`
	Institution  string  `json:"institution" db:"institution"`
	Degree       string  `json:"degree" db:"degree"`
	FieldOfStudy *string `json:"fieldOfStudy,omitempty" db:"field_of_study"`
	StartYear    int     `json:"startYear" db:"start_year"`
	EndYear      *int    `json:"endYear,omitempty" db:"end_year"`
	Grade        *string `json:"grade,omitempty" db:"grade"`
}

// Certification defines a certification entry owned by a student
type Certification struct {
	ID             int64      `json:"id" db:"id"`
	StudentID      int64      `json:"studentId" db:"student_id"`
	Name           string     `json:"name" db:"name"`
	IssuingBody    *string    `json:"issuingBody,omitempty" db:"issuing_body"`
	IssueDate      *time.Time `json:"issueDate,omitempty" db:"issue_date"`
	CertificateURL *string    `json:"certificateUrl,omitempty" db:"certificate_url"`
}
