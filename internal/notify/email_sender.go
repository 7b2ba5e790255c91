package notify

import (
	"context"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for the email sink.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

// Email delivers reports via SMTP, HTML body with plain text fallback.
type Email struct {
	cfg      EmailConfig
	renderer *rankingRenderer
}

func NewEmail(cfg EmailConfig) *Email {
	return &Email{cfg: cfg, renderer: newRankingRenderer()}
}

func (e *Email) Top10(_ context.Context, report Report) error {
	msg, err := e.renderer.render(report)
	if err != nil {
		return err
	}
	return e.send(msg)
}

func (e *Email) Failure(_ context.Context, when time.Time, detail string) error {
	return e.send(&RenderedMessage{
		Subject: fmt.Sprintf("브랜드 랭킹 수집 실패 — %s", when.Format("2006-01-02")),
		Text:    fmt.Sprintf("브랜드 랭킹 수집 실패 — %s\n\n%s\n", when.Format("2006-01-02 15:04 MST"), detail),
	})
}

func (e *Email) send(msg *RenderedMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.FromEmail)
	m.SetHeader("To", e.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	dialer := gomail.NewDialer(e.cfg.SMTPServer, e.cfg.SMTPPort, e.cfg.SMTPUser, e.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s (Subject: %s): %w", e.cfg.ToEmail, msg.Subject, err)
	}
	return nil
}
