package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/config"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

func TestBuildPayload(t *testing.T) {
	v := sla.Violation{
		RequestID:      "req-1",
		Type:           sla.DeadlineArrive,
		MinutesOverdue: 42,
		Priority:       domain.PriorityHigh,
		WorkflowStage:  domain.StageAssigned,
	}

	payload := BuildPayload(v)
	assert.Equal(t, "req-1", payload.RequestID)
	assert.Equal(t, sla.DeadlineArrive, payload.ViolationType)
	assert.Equal(t, 42, payload.MinutesOverdue)
	assert.Equal(t, domain.PriorityHigh, payload.Priority)
}

func TestSenders_RequireConfiguration(t *testing.T) {
	logger := zap.NewNop()
	payload := Payload{RequestID: "req-1", ViolationType: sla.DeadlineAccept, MinutesOverdue: 5}

	email := NewEmailSender(logger, config.NotificationConfig{})
	_, err := email.Send(context.Background(), payload)
	assert.Error(t, err)

	email = NewEmailSender(logger, config.NotificationConfig{EmailFrom: "ops@example.com"})
	body, err := email.Send(context.Background(), payload)
	require.NoError(t, err)
	assert.Contains(t, body, "req-1")
	assert.Contains(t, body, "accept")

	sms := NewSMSSender(logger, config.NotificationConfig{})
	_, err = sms.Send(context.Background(), payload)
	assert.Error(t, err)
}

func TestRateLimiter_FailsOpenWithoutClient(t *testing.T) {
	limiter := NewRateLimiter(nil, 2, time.Hour)
	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow(context.Background(), "email:req-1"))
	}

	var nilLimiter *RateLimiter
	assert.True(t, nilLimiter.Allow(context.Background(), "email:req-1"))
}
