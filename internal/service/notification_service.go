package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/events"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/notify"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/observability"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/repository"
)

// NotificationService consumes violation events and fans them out to the
// configured channels. Each channel send is independent: a failure is logged
// and recorded, and never stops the remaining channels or the sweep that
// produced the event.
type NotificationService struct {
	dispatcher    events.Dispatcher
	senders       []notify.Sender
	limiter       *notify.RateLimiter
	notifications repository.NotificationRepository
	logger        *zap.Logger
	metrics       *observability.Metrics
}

// NotificationDependencies bundles collaborators.
type NotificationDependencies struct {
	Dispatcher       events.Dispatcher
	Senders          []notify.Sender
	RateLimiter      *notify.RateLimiter
	NotificationRepo repository.NotificationRepository
	Logger           *zap.Logger
	Metrics          *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher:    deps.Dispatcher,
		senders:       deps.Senders,
		limiter:       deps.RateLimiter,
		notifications: deps.NotificationRepo,
		logger:        logger,
		metrics:       deps.Metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSLAViolationDetected, n.handleViolationDetected)
}

func (n *NotificationService) handleViolationDetected(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SLAViolationPayload)
	if !ok {
		n.logger.Warn("unexpected payload for violation event", zap.String("event_id", event.ID))
		return nil
	}
	n.Dispatch(ctx, notify.BuildPayload(payload.Violation))
	return nil
}

// Dispatch fans one violation out to every channel.
func (n *NotificationService) Dispatch(ctx context.Context, payload notify.Payload) {
	for _, sender := range n.senders {
		n.dispatchOne(ctx, sender, payload)
	}
}

func (n *NotificationService) dispatchOne(ctx context.Context, sender notify.Sender, payload notify.Payload) {
	channel := sender.Channel()
	identity := fmt.Sprintf("%s:%s:%s", channel, payload.RequestID, payload.ViolationType)

	if !n.limiter.Allow(ctx, identity) {
		n.logger.Debug("notification rate limited",
			zap.String("channel", string(channel)),
			zap.String("request_id", payload.RequestID))
		n.record(ctx, channel, payload, "", domain.NotificationSkipped)
		return
	}

	body, err := sender.Send(ctx, payload)
	if err != nil {
		n.logger.Warn("notification send failed",
			zap.String("channel", string(channel)),
			zap.String("request_id", payload.RequestID),
			zap.Error(err))
		n.metrics.RecordNotification(string(channel), false)
		n.record(ctx, channel, payload, body, domain.NotificationFailed)
		return
	}

	n.metrics.RecordNotification(string(channel), true)
	n.record(ctx, channel, payload, body, domain.NotificationSent)
}

func (n *NotificationService) record(ctx context.Context, channel domain.NotificationChannel, payload notify.Payload, body string, status domain.NotificationStatus) {
	if n.notifications == nil {
		return
	}
	notification := &domain.Notification{
		RequestID: payload.RequestID,
		Channel:   channel,
		Kind:      "sla_violation_" + string(payload.ViolationType),
		Body:      body,
		Status:    status,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to record notification",
			zap.String("request_id", payload.RequestID),
			zap.Error(err))
	}
}
