// Package mailer sends the password-reset email.
package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/resend/resend-go/v3"
)

const resetSubject = "Reset your password"

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer delivers mail through the Resend API.
type ResendMailer struct {
	emails emailSender
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	client := resend.NewClient(apiKey)
	return &ResendMailer{emails: client.Emails, from: from}
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: resetSubject,
		Html: fmt.Sprintf(
			`<p>Follow <a href="%s">this link</a> to reset your password.</p><p>If you didn't ask to reset your password, you can ignore this email.</p>`,
			html.EscapeString(link)),
		Text: "Follow this link to reset your password: " + link,
	}

	if _, err := m.emails.Send(params); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogMailer writes the link to the log instead of sending it. Used when no
// Resend API key is configured.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	m.logger.Info(ctx, "password reset mail", "to", to, "link", link)
	return nil
}
