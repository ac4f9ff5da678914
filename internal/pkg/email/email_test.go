package email

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out := RenderTemplate("Hello {{name}}, your code is {{code}}", map[string]string{
		"name": "Asha",
		"code": "1234",
	})
	assert.Equal(t, "Hello Asha, your code is 1234", out)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	out := RenderTemplate("Hi {{name}}, see {{link}}", map[string]string{"name": "Asha"})
	assert.Equal(t, "Hi Asha, see {{link}}", out)

	assert.Equal(t, "plain text", RenderTemplate("plain text", nil))
}

type stubTemplateSource struct {
	subject string
	body    string
	err     error
}

func (s stubTemplateSource) GetTemplate(context.Context, string) (string, string, error) {
	return s.subject, s.body, s.err
}

func TestSendWithoutCredentialsLogsOnly(t *testing.T) {
	svc := NewEmailService(SMTPConfig{}, nil, zerolog.Nop())
	err := svc.Send(context.Background(), "asha@school.edu", TemplateWelcome, map[string]string{"name": "Asha"})
	require.NoError(t, err, "missing SMTP credentials must not fail the caller")
}

func TestResolveTemplatePrefersStoredOverDefault(t *testing.T) {
	svc := &emailServiceImpl{
		templates: stubTemplateSource{subject: "Custom", body: "<p>custom</p>"},
		logger:    zerolog.Nop(),
	}
	subject, body := svc.resolveTemplate(context.Background(), TemplateWelcome)
	assert.Equal(t, "Custom", subject)
	assert.Equal(t, "<p>custom</p>", body)
}

func TestResolveTemplateFallsBackToDefault(t *testing.T) {
	svc := &emailServiceImpl{
		templates: stubTemplateSource{err: errors.New("no row")},
		logger:    zerolog.Nop(),
	}
	subject, body := svc.resolveTemplate(context.Background(), TemplateStatusChange)
	assert.Equal(t, defaultTemplates[TemplateStatusChange].subject, subject)
	assert.Equal(t, defaultTemplates[TemplateStatusChange].body, body)
}
