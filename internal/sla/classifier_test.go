package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBadge(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want BadgeBucket
	}{
		{"overdue", -time.Minute, BadgeOverdue},
		{"barely overdue", -time.Nanosecond, BadgeOverdue},
		{"exactly zero is not overdue", 0, BadgeCritical},
		{"thirty minutes", 30 * time.Minute, BadgeCritical},
		{"just under one hour", 59 * time.Minute, BadgeCritical},
		{"exactly one hour", time.Hour, BadgeNormal},
		{"three hours", 3 * time.Hour, BadgeNormal},
		{"just under a day", 23*time.Hour + 59*time.Minute, BadgeNormal},
		{"exactly one day", 24 * time.Hour, BadgeDistant},
		{"a week out", 7 * 24 * time.Hour, BadgeDistant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyBadge(tc.d))
		})
	}
}

func TestClassifyBatch(t *testing.T) {
	cases := []struct {
		name string
		typ  DeadlineType
		d    time.Duration
		want BatchBucket
	}{
		{"accept overdue", DeadlineAccept, -time.Second, BucketOverdue},
		{"accept zero is at risk", DeadlineAccept, 0, BucketAtRisk},
		{"accept thirty minutes", DeadlineAccept, 30 * time.Minute, BucketAtRisk},
		{"accept one hour on time", DeadlineAccept, time.Hour, BucketOnTime},
		{"arrive overdue", DeadlineArrive, -time.Minute, BucketOverdue},
		{"arrive thirty minutes", DeadlineArrive, 30 * time.Minute, BucketAtRisk},
		{"arrive two hours", DeadlineArrive, 2 * time.Hour, BucketOnTime},
		{"complete uses a two hour window", DeadlineComplete, 90 * time.Minute, BucketAtRisk},
		{"complete exactly two hours", DeadlineComplete, 2 * time.Hour, BucketOnTime},
		{"complete three hours", DeadlineComplete, 3 * time.Hour, BucketOnTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyBatch(tc.typ, tc.d))
		})
	}
}

func TestWorseBatch(t *testing.T) {
	assert.Equal(t, BucketOverdue, worseBatch(BucketAtRisk, BucketOverdue))
	assert.Equal(t, BucketOverdue, worseBatch(BucketOverdue, BucketOnTime))
	assert.Equal(t, BucketAtRisk, worseBatch(BucketOnTime, BucketAtRisk))
	assert.Equal(t, BucketOnTime, worseBatch(BucketOnTime, BucketOnTime))
}
