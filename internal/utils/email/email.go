package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gcare-service/internal/config"
	"github.com/Dan9191/gcare-service/internal/models"
	"github.com/Dan9191/gcare-service/internal/report"
)

// DigestEntry is one flagged assessment in a review digest
type DigestEntry struct {
	Name            string
	RiskLevel       models.RiskLevel
	StressedSurplus float64
	Currency        string
}

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendAssessmentSummary emails a report summary with the XML export attached
func (s *Sender) SendAssessmentSummary(ctx context.Context, to, username, name string, r models.Report) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Financial assessment: %s (%s risk)", name, r.Metrics.RiskLevel)

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += "Here is the latest summary of your saved assessment.\n\n"
	body += report.Text(name, r)
	body += "\nBest regards,\nGCARE"
	e.Text = []byte(body)

	doc, err := report.XML(name, r)
	if err != nil {
		return err
	}
	if _, err := e.Attach(bytes.NewReader(doc), "assessment.xml", "application/xml"); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	return s.deliver(ctx, e)
}

// SendReviewDigest emails the list of assessments flagged by a scheduled review
func (s *Sender) SendReviewDigest(ctx context.Context, to, username string, entries []DigestEntry) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Scheduled review of your financial assessments"

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += "The following saved assessments need your attention:\n\n"
	for _, entry := range entries {
		body += fmt.Sprintf("  %s: %s risk, stressed surplus %s %s\n",
			entry.Name, entry.RiskLevel, report.Money(entry.StressedSurplus), entry.Currency)
	}
	body += "\nA high risk level or a negative surplus under stress suggests reviewing your budget and debt options.\n"
	body += "\nBest regards,\nGCARE"
	e.Text = []byte(body)

	return s.deliver(ctx, e)
}

func (s *Sender) deliver(ctx context.Context, e *email.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := strings.Join(e.To, ",")

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
