package dto

import "github.com/campuslink/jobportal/internal/app/models"

// CreateUserRequest represents an admin creating a single account
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	RoleType models.RoleType `json:"roleType" binding:"required,oneof=ADMIN SCHOOL STUDENT"`
}

// UpdateUserRequest represents an admin updating an account
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateCoreSkillRequest represents an admin defining a competency
type CreateCoreSkillRequest struct {
	Name      string   `json:"name" binding:"required,min=2,max=100"`
	SubSkills []string `json:"subSkills" binding:"required,min=1,max=4,dive,required"`
}

// UpdateCoreSkillRequest renames a core skill or replaces its sub skills
type UpdateCoreSkillRequest struct {
	Name      *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	SubSkills []string `json:"subSkills,omitempty" binding:"omitempty,min=1,max=4,dive,required"`
}

// CreateCategoryRequest represents an admin creating a job category
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	CoreSkillIDs []int64 `json:"coreSkillIds,omitempty"`
}

// UpdateCategoryRequest renames a category or replaces its core skill list
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	CoreSkillIDs []int64 `json:"coreSkillIds,omitempty"`
}

// SubSkillLimitRequest updates the sub-skill mark ceiling
type SubSkillLimitRequest struct {
	Limit int `json:"limit" binding:"required,min=1,max=100"`
}

// EmailTemplateRequest updates the stored body for an email template key
type EmailTemplateRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
