package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Template keys understood by the service. Bodies and subjects are stored in
// the settings table and editable by admins; defaultTemplates is the
// fallback when no row exists.
const (
	TemplateWelcome      = "email_template_welcome"
	TemplateStatusChange = "email_template_status_change"
	TemplateInterview    = "email_template_interview"
)

// TemplateSource resolves a template key to its subject and body. Missing
// templates return an error; the service then falls back to the built-in
// default.
type TemplateSource interface {
	GetTemplate(ctx context.Context, key string) (subject, body string, err error)
}

// EmailService defines the interface for email operations
type EmailService interface {
	// Send renders the template under key with the given placeholder values
	// and sends it to the recipient.
	Send(ctx context.Context, toEmail, key string, values map[string]string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

type defaultTemplate struct {
	subject string
	body    string
}

var defaultTemplates = map[string]defaultTemplate{
	TemplateWelcome: {
		subject: "Welcome to the Campus Job Portal",
		body: `<html><body>
			<p>Hello {{name}},</p>
			<p>An account has been created for you on the campus job portal.</p>
			<p>Email: <strong>{{email}}</strong><br>Temporary password: <strong>{{password}}</strong></p>
			<p>Please log in and change your password.</p>
		</body></html>`,
	},
	TemplateStatusChange: {
		subject: "Update on your application for {{jobTitle}}",
		body: `<html><body>
			<p>Hello {{name}},</p>
			<p>Your application for <strong>{{jobTitle}}</strong> at {{schoolName}} has been updated to: <strong>{{status}}</strong>.</p>
		</body></html>`,
	},
	TemplateInterview: {
		subject: "Interview scheduled for {{jobTitle}}",
		body: `<html><body>
			<p>Hello {{name}},</p>
			<p>An interview for <strong>{{jobTitle}}</strong> at {{schoolName}} has been scheduled.</p>
			<p>Date: {{interviewDate}}<br>Time: {{interviewTime}}<br>Location: {{location}}</p>
		</body></html>`,
	},
}

// emailServiceImpl implements EmailService over plain SMTP
type emailServiceImpl struct {
	config    SMTPConfig
	templates TemplateSource
	logger    zerolog.Logger
}

// NewEmailService creates a new EmailService. templates may be nil; the
// built-in defaults are then always used.
func NewEmailService(config SMTPConfig, templates TemplateSource, logger zerolog.Logger) EmailService {
	return &emailServiceImpl{
		config:    config,
		templates: templates,
		logger:    logger,
	}
}

// Send renders and sends the template addressed by key.
func (s *emailServiceImpl) Send(ctx context.Context, toEmail, key string, values map[string]string) error {
	subject, body := s.resolveTemplate(ctx, key)
	subject = RenderTemplate(subject, values)
	body = RenderTemplate(body, values)

	// Without SMTP credentials, log the mail instead of sending it so
	// development setups keep working.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("templateKey", key).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *emailServiceImpl) resolveTemplate(ctx context.Context, key string) (string, string) {
	if s.templates != nil {
		subject, body, err := s.templates.GetTemplate(ctx, key)
		if err == nil && body != "" {
			return subject, body
		}
	}
	if tpl, ok := defaultTemplates[key]; ok {
		return tpl.subject, tpl.body
	}
	s.logger.Warn().Str("templateKey", key).Msg("Unknown email template key, sending empty body")
	return key, ""
}

// RenderTemplate substitutes {{name}} style placeholders with their values.
// Templates are admin-authored HTML stored as flat text; unknown
// placeholders are left untouched.
func RenderTemplate(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// sendHTMLEmail sends an HTML email over SMTP, optionally through TLS
func (s *emailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var sb strings.Builder
	for key, value := range headers {
		sb.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	message := sb.String()

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		err := smtp.SendMail(
			serverAddress,
			auth,
			s.config.FromEmail,
			[]string{toEmail},
			[]byte(message),
		)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
	}

	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}
