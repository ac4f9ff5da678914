package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/email"
)

// settingTemplateSource serves admin-edited email templates out of the
// settings table. Missing rows make the email service fall back to its
// built-in defaults.
type settingTemplateSource struct {
	settings *repositories.SettingRepository
}

// NewSettingTemplateSource adapts the setting repository to the email
// service's template lookup.
func NewSettingTemplateSource(settings *repositories.SettingRepository) email.TemplateSource {
	return settingTemplateSource{settings: settings}
}

func (s settingTemplateSource) GetTemplate(ctx context.Context, key string) (subject, body string, err error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", "", err
	}

	var tpl storedTemplate
	if err := json.Unmarshal([]byte(setting.Value), &tpl); err != nil {
		return "", "", fmt.Errorf("stored template %s is corrupt: %w", key, err)
	}
	return tpl.Subject, tpl.Body, nil
}
