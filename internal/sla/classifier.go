package sla

import "time"

// BadgeBucket is the fine-grained severity used by per-request badge rendering.
type BadgeBucket string

const (
	BadgeOverdue  BadgeBucket = "overdue"
	BadgeCritical BadgeBucket = "critical"
	BadgeNormal   BadgeBucket = "normal"
	BadgeDistant  BadgeBucket = "distant"
)

// BatchBucket is the coarse severity used by dashboard aggregation.
type BatchBucket string

const (
	BucketOnTime  BatchBucket = "onTime"
	BucketAtRisk  BatchBucket = "atRisk"
	BucketOverdue BatchBucket = "overdue"
)

// At-risk windows per deadline type under the aggregator policy.
const (
	acceptAtRiskWindow   = 1
	arriveAtRiskWindow   = 1
	completeAtRiskWindow = 2
)

// ClassifyBadge maps remaining time onto the badge policy buckets.
// Strictly negative is the only overdue trigger; zero is critical.
func ClassifyBadge(d time.Duration) BadgeBucket {
	if d < 0 {
		return BadgeOverdue
	}
	hours := Breakdown(d).Hours
	switch {
	case hours < 1:
		return BadgeCritical
	case hours < 24:
		return BadgeNormal
	default:
		return BadgeDistant
	}
}

// ClassifyBatch maps remaining time onto the aggregator policy buckets.
// The at-risk window depends on the deadline type, not on priority.
func ClassifyBatch(t DeadlineType, d time.Duration) BatchBucket {
	if d < 0 {
		return BucketOverdue
	}
	window := acceptAtRiskWindow
	switch t {
	case DeadlineArrive:
		window = arriveAtRiskWindow
	case DeadlineComplete:
		window = completeAtRiskWindow
	}
	if Breakdown(d).Hours < window {
		return BucketAtRisk
	}
	return BucketOnTime
}

func worseBatch(a, b BatchBucket) BatchBucket {
	if a == BucketOverdue || b == BucketOverdue {
		return BucketOverdue
	}
	if a == BucketAtRisk || b == BucketAtRisk {
		return BucketAtRisk
	}
	return BucketOnTime
}
