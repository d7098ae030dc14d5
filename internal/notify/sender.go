package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/config"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

// Payload is the dispatch input built from a violation record. It carries
// structured violation data only; contact lookup and message formatting
// belong to the channel implementations.
type Payload struct {
	RequestID      string
	ViolationType  sla.DeadlineType
	MinutesOverdue int
	Priority       domain.RequestPriority
	WorkflowStage  domain.WorkflowStage
}

// Sender delivers a violation alert over one channel.
type Sender interface {
	Channel() domain.NotificationChannel
	Send(ctx context.Context, payload Payload) (body string, err error)
}

// BuildPayload adapts a violation record into dispatch input.
func BuildPayload(v sla.Violation) Payload {
	return Payload{
		RequestID:      v.RequestID,
		ViolationType:  v.Type,
		MinutesOverdue: v.MinutesOverdue,
		Priority:       v.Priority,
		WorkflowStage:  v.WorkflowStage,
	}
}

// EmailSender is a log-only email channel gated on a configured sender address.
type EmailSender struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewEmailSender creates the channel.
func NewEmailSender(logger *zap.Logger, cfg config.NotificationConfig) *EmailSender {
	return &EmailSender{logger: logger, cfg: cfg}
}

// Channel identifies the sender.
func (s *EmailSender) Channel() domain.NotificationChannel {
	return domain.ChannelEmail
}

// Send emits the email stub.
func (s *EmailSender) Send(ctx context.Context, payload Payload) (string, error) {
	if strings.TrimSpace(s.cfg.EmailFrom) == "" {
		return "", fmt.Errorf("email sender not configured")
	}
	body := violationMessage(payload)
	s.logger.Debug("sendEmailNotificationStub",
		zap.String("from", s.cfg.EmailFrom),
		zap.String("request_id", payload.RequestID),
		zap.String("violation_type", string(payload.ViolationType)))
	return body, nil
}

// SMSSender is a log-only SMS/WhatsApp channel gated on a configured webhook.
type SMSSender struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewSMSSender creates the channel.
func NewSMSSender(logger *zap.Logger, cfg config.NotificationConfig) *SMSSender {
	return &SMSSender{logger: logger, cfg: cfg}
}

// Channel identifies the sender.
func (s *SMSSender) Channel() domain.NotificationChannel {
	return domain.ChannelSMS
}

// Send emits the SMS stub.
func (s *SMSSender) Send(ctx context.Context, payload Payload) (string, error) {
	if strings.TrimSpace(s.cfg.SMSWebhookURL) == "" {
		return "", fmt.Errorf("sms webhook not configured")
	}
	body := violationMessage(payload)
	s.logger.Debug("sendSMSNotificationStub",
		zap.String("url", s.cfg.SMSWebhookURL),
		zap.String("request_id", payload.RequestID),
		zap.String("violation_type", string(payload.ViolationType)))
	return body, nil
}

func violationMessage(payload Payload) string {
	return fmt.Sprintf("request %s missed its %s deadline by %d minutes (priority %s, stage %s)",
		payload.RequestID, payload.ViolationType, payload.MinutesOverdue, payload.Priority, payload.WorkflowStage)
}
