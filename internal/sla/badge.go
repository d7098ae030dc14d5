package sla

import (
	"fmt"
	"time"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// Badge is the per-request rendering payload for UI consumers.
type Badge struct {
	DeadlineType DeadlineType `json:"deadline_type"`
	Bucket       BadgeBucket  `json:"bucket"`
	Icon         string       `json:"icon"`
	DisplayText  string       `json:"display_text"`
}

// BuildBadge renders the badge policy output for a single deadline.
func BuildBadge(t DeadlineType, due, now time.Time) Badge {
	d := Remaining(due, now)
	bucket := ClassifyBadge(d)
	parts := Breakdown(d)

	badge := Badge{DeadlineType: t, Bucket: bucket}
	switch bucket {
	case BadgeOverdue:
		badge.Icon = "alert-circle"
		badge.DisplayText = fmt.Sprintf("%dh overdue", parts.Hours)
	case BadgeCritical:
		badge.Icon = "alarm"
		badge.DisplayText = fmt.Sprintf("%dm remaining", parts.Minutes)
	case BadgeNormal:
		badge.Icon = "clock"
		badge.DisplayText = fmt.Sprintf("%dh remaining", parts.Hours)
	default:
		badge.Icon = "calendar"
		badge.DisplayText = fmt.Sprintf("%dd remaining", parts.Days)
	}
	return badge
}

// BadgeFor renders the badge for the request's single active deadline, or nil
// when the request has none (terminal, unrecognized stage, or no deadline set).
func BadgeFor(req *domain.MaintenanceRequest, now time.Time) *Badge {
	deadline := ActiveDeadline(req)
	if deadline == nil {
		return nil
	}
	badge := BuildBadge(deadline.Type, deadline.Due, now)
	return &badge
}
