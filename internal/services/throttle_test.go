package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_Allow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	th := NewThrottle(clock)

	t.Run("First event allowed", func(t *testing.T) {
		assert.True(t, th.Allow(EventSectionView, "about", viewThrottleWindow))
	})

	t.Run("Repeat inside window blocked", func(t *testing.T) {
		now = now.Add(30 * time.Second)
		assert.False(t, th.Allow(EventSectionView, "about", viewThrottleWindow))
	})

	t.Run("Different key allowed", func(t *testing.T) {
		assert.True(t, th.Allow(EventSectionView, "projects", viewThrottleWindow))
	})

	t.Run("Different kind same key allowed", func(t *testing.T) {
		assert.True(t, th.Allow(EventLinkClick, "about", viewThrottleWindow))
	})

	t.Run("Repeat after window allowed", func(t *testing.T) {
		now = now.Add(viewThrottleWindow)
		assert.True(t, th.Allow(EventSectionView, "about", viewThrottleWindow))
	})
}

func TestThrottle_Sweep(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	th := NewThrottle(clock)

	th.Allow(EventDevice, "visitor-a", dailyThrottleWindow)
	now = now.Add(3 * dailyThrottleWindow)
	th.Sweep(2 * dailyThrottleWindow)

	// Entry is gone, so the event counts again.
	assert.True(t, th.Allow(EventDevice, "visitor-a", dailyThrottleWindow))
}
