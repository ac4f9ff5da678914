package models

import "time"

// Setting keys used by the application.
const (
	SettingSubSkillMarkLimit = "subskill_mark_limit"

	// Email template keys. Template bodies may contain {{name}}, {{email}},
	// {{password}}, {{jobTitle}}, {{schoolName}}, {{status}},
	// {{interviewDate}}, {{interviewTime}} and {{location}} placeholders.
	SettingTemplateWelcome         = "email_template_welcome"
	SettingTemplateStatusChange    = "email_template_status_change"
	SettingTemplateInterview       = "email_template_interview"
)

// DefaultSubSkillMarkLimit is the mark ceiling applied when the setting row
// is missing or unparseable.
const DefaultSubSkillMarkLimit = 10

// Setting defines a generic key/value configuration row based on the
// 'settings' table
type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
