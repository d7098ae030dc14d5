package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

func TestBuildBadge_DisplayText(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		due     time.Time
		bucket  BadgeBucket
		icon    string
		display string
	}{
		{"three hours overdue", now.Add(-3 * time.Hour), BadgeOverdue, "alert-circle", "3h overdue"},
		{"ninety minutes overdue shows whole hours", now.Add(-90 * time.Minute), BadgeOverdue, "alert-circle", "1h overdue"},
		{"thirty minutes left", now.Add(30 * time.Minute), BadgeCritical, "alarm", "30m remaining"},
		{"five hours left", now.Add(5 * time.Hour), BadgeNormal, "clock", "5h remaining"},
		{"three days left", now.Add(3 * 24 * time.Hour), BadgeDistant, "calendar", "3d remaining"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			badge := BuildBadge(DeadlineArrive, tc.due, now)
			assert.Equal(t, tc.bucket, badge.Bucket)
			assert.Equal(t, tc.icon, badge.Icon)
			assert.Equal(t, tc.display, badge.DisplayText)
		})
	}
}

func TestBadgeFor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	arrive := now.Add(30 * time.Minute)

	req := &domain.MaintenanceRequest{
		Status:        domain.StatusOpen,
		WorkflowStage: domain.StageAssigned,
		SLAArriveDue:  &arrive,
	}

	badge := BadgeFor(req, now)
	require.NotNil(t, badge)
	assert.Equal(t, DeadlineArrive, badge.DeadlineType)
	assert.Equal(t, BadgeCritical, badge.Bucket)
	assert.Equal(t, "30m remaining", badge.DisplayText)

	req.Status = domain.StatusCancelled
	assert.Nil(t, BadgeFor(req, now))
}
