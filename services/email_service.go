package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/models"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// StatusNotification describes an approval decision sent to the account owner.
type StatusNotification struct {
	Email    string
	Name     string
	Role     string
	UniqueID string
	Status   models.RegistrationStatus
}

// Notifier delivers status notifications. Implementations must not block the caller
// on delivery and must not fail the operation that triggered them.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, n StatusNotification)
}

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChange(context.Context, StatusNotification) {}

// NoopNotifier is used when SMTP is not configured.
func NoopNotifier() Notifier {
	return noopNotifier{}
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	sender  mailSender
	from    string
	domain  string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Domain   string
}

func NewEmailService(cfg EmailConfig, logger *slog.Logger, m *metrics.Metrics) *EmailService {
	return &EmailService{
		sender:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		domain:  cfg.Domain,
		logger:  logger,
		metrics: m,
	}
}

var statusEmailTemplate = template.Must(template.New("status").Parse(`<p>Hello {{.Name}},</p>
{{if eq .Status "approved"}}<p>Your {{.Role}} registration has been <strong>approved</strong>.
Your Unique ID is <strong>{{.UniqueID}}</strong>. Keep it together with your R-Number for verification.</p>
{{else}}<p>Your {{.Role}} registration has been <strong>{{.Status}}</strong>.
Please contact the sports committee if you think this is a mistake.</p>{{end}}
<p>Sports Committee</p>`))

func (s *EmailService) buildMessage(n StatusNotification) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := statusEmailTemplate.Execute(&body, n); err != nil {
		return nil, fmt.Errorf("failed to render status email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), s.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", n.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Your %s registration is %s", n.Role, n.Status))
	msg.SetBody("text/html", body.String())
	return msg, nil
}

// NotifyStatusChange sends in the background; delivery errors are logged and counted.
func (s *EmailService) NotifyStatusChange(_ context.Context, n StatusNotification) {
	if n.Email == "" {
		return
	}
	msg, err := s.buildMessage(n)
	if err != nil {
		s.logger.Error("status email not sent", "email", n.Email, "error", err)
		s.metrics.RecordEmail(err)
		return
	}

	go func() {
		err := s.sender.DialAndSend(msg)
		s.metrics.RecordEmail(err)
		if err != nil {
			s.logger.Error("failed to send status email", "email", n.Email, "status", n.Status, "error", err)
			return
		}
		s.logger.Info("status email sent", "email", n.Email, "status", n.Status)
	}()
}

// shouldNotify limits emails to approval decisions.
func shouldNotify(status models.RegistrationStatus) bool {
	return status == models.StatusApproved || status == models.StatusRejected
}
