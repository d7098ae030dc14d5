package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/events"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/notify"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/observability"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

type fakeSender struct {
	channel domain.NotificationChannel
	fail    bool
	sent    []notify.Payload
}

func (f *fakeSender) Channel() domain.NotificationChannel { return f.channel }

func (f *fakeSender) Send(ctx context.Context, payload notify.Payload) (string, error) {
	if f.fail {
		return "", fmt.Errorf("provider unavailable")
	}
	f.sent = append(f.sent, payload)
	return "alert for " + payload.RequestID, nil
}

func TestNotification_FanOutIsIndependentlyFailable(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	email := &fakeSender{channel: domain.ChannelEmail, fail: true}
	sms := &fakeSender{channel: domain.ChannelSMS}
	repo := &memoryNotificationRepo{}

	svc := NewNotificationService(NotificationDependencies{
		Dispatcher:       dispatcher,
		Senders:          []notify.Sender{email, sms},
		NotificationRepo: repo,
		Metrics:          observability.NewMetrics(),
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventSLAViolationDetected,
		RequestID: "req-1",
		Timestamp: time.Now(),
		Payload: events.SLAViolationPayload{Violation: sla.Violation{
			RequestID:      "req-1",
			Type:           sla.DeadlineAccept,
			MinutesOverdue: 90,
			Priority:       domain.PriorityHigh,
			WorkflowStage:  domain.StageSubmitted,
		}},
	})
	require.NoError(t, err)

	// Email failed but SMS still went out.
	assert.Empty(t, email.sent)
	require.Len(t, sms.sent, 1)
	assert.Equal(t, "req-1", sms.sent[0].RequestID)

	// Both outcomes were recorded in-app.
	require.Len(t, repo.created, 2)
	assert.Equal(t, domain.NotificationFailed, repo.created[0].Status)
	assert.Equal(t, domain.NotificationSent, repo.created[1].Status)
	assert.Equal(t, "sla_violation_accept", repo.created[0].Kind)
}

func TestNotification_IgnoresMalformedPayload(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	email := &fakeSender{channel: domain.ChannelEmail}

	svc := NewNotificationService(NotificationDependencies{
		Dispatcher: dispatcher,
		Senders:    []notify.Sender{email},
		Metrics:    observability.NewMetrics(),
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventSLAViolationDetected,
		RequestID: "req-1",
		Payload:   "not a violation",
	})
	require.NoError(t, err)
	assert.Empty(t, email.sent)
}
