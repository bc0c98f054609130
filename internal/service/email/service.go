package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"ceasefire/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, username, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, username, resetToken string) error
	SendFightInvite(ctx context.Context, toEmail, creatorName, fightTitle string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

const baseTemplate = `<html><body style="font-family:sans-serif">
<h2>{{.Title}}</h2>
<p>Hi {{.Name}},</p>
<p>{{.Body}}</p>
{{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
<p>— Ceasefire</p>
</body></html>`

type emailData struct {
	Title    string
	Name     string
	Body     string
	Link     string
	LinkText string
}

func (s *service) sendEmail(toEmail, subject string, data emailData) error {
	tmpl, err := template.New("email").Parse(baseTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Ceasefire <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, username, verificationToken string) error {
	return s.sendEmail(toEmail, "Verify your email - Ceasefire", emailData{
		Title:    "Verify your email",
		Name:     username,
		Body:     "Confirm your email address to start settling disputes.",
		Link:     fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
		LinkText: "Verify email",
	})
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, username, resetToken string) error {
	return s.sendEmail(toEmail, "Reset your password - Ceasefire", emailData{
		Title:    "Password reset requested",
		Name:     username,
		Body:     "Use the link below to choose a new password. The link expires in one hour.",
		Link:     fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
		LinkText: "Reset password",
	})
}

func (s *service) SendFightInvite(ctx context.Context, toEmail, creatorName, fightTitle string) error {
	return s.sendEmail(toEmail, "You have been challenged - Ceasefire", emailData{
		Title:    "You have been challenged",
		Name:     toEmail,
		Body:     fmt.Sprintf("%s started the fight %q and named you as the opponent. Sign in to pick your animal and accept.", creatorName, fightTitle),
		Link:     fmt.Sprintf("https://%s/login", s.config.Domain),
		LinkText: "View invitation",
	})
}
