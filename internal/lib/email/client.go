// Package email provides an email sending client.
//
// It uses Resend as the email provider and loads HTML templates from
// the filesystem to render email bodies.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/vendorrs/backend/internal/config"
)

// Template names map 1:1 to files under templates/emails/.
type Template string

const (
	TemplatePasswordReset Template = "password_reset"
)

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	logger *zerolog.Logger
}

// NewClient creates an email Client using the API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		logger: logger,
	}
}

// SendEmail sends an email with HTML rendered from a template file.
//
// Steps:
//   - load the template file from templates/emails/<name>.html
//   - execute it with data into a buffer
//   - call the Resend API
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("%s/%s.html", "templates/emails", templateName)

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", "VendorRS", "no-reply@vendorrs.dev"),
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	_, err = c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendPasswordResetEmail sends the password-reset message carrying the
// single-use token.
func (c *Client) SendPasswordResetEmail(to, token string) error {
	return c.SendEmail(to, "Reset your VendorRS password", TemplatePasswordReset, map[string]string{
		"Token": token,
	})
}
