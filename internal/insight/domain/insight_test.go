package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("fills everything on a bare insight", func(t *testing.T) {
		i := &Insight{}
		i.ApplyDefaults(now)

		assert.Equal(t, StatusPending, i.Status)
		assert.Equal(t, PriorityMedium, i.Priority)
		assert.Equal(t, now.Add(7*24*time.Hour), i.ExpiresAt)
	})

	t.Run("explicit values win", func(t *testing.T) {
		explicit := now.Add(time.Hour)
		i := &Insight{Status: StatusViewed, Priority: PriorityHigh, ExpiresAt: explicit}
		i.ApplyDefaults(now)

		assert.Equal(t, StatusViewed, i.Status)
		assert.Equal(t, PriorityHigh, i.Priority)
		assert.Equal(t, explicit, i.ExpiresAt)
	})
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 1, Priority("bogus").Rank())
}
