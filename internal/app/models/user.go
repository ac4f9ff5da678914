package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64      `json:"id" db:"id" example:"1"`
	Name               string     `json:"name" db:"name" example:"Asha Verma"`
	Email              string     `json:"email" db:"email" example:"asha@school.edu"`
	Password           string     `json:"-" db:"password"`
	RoleType           RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	OnboardingComplete bool       `json:"onboardingComplete" db:"onboarding_complete" example:"true"`
	IsActive           bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
}
