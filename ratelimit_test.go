package addlist

import (
	"testing"

	"github.com/ryanhamamura/addlist/h"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitConfigLimiter(t *testing.T) {
	testcases := []struct {
		desc      string
		cfg       RateLimitConfig
		wantRate  float64
		wantBurst int
	}{
		{"defaults", RateLimitConfig{}, 10, 20},
		{"custom", RateLimitConfig{Rate: 5, Burst: 10}, 5, 10},
		{"rate only", RateLimitConfig{Rate: 2}, 2, 20},
		{"burst only", RateLimitConfig{Burst: 3}, 10, 3},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			l := tc.cfg.limiter()
			require.NotNil(t, l)
			assert.InDelta(t, tc.wantRate, float64(l.Limit()), 0.001)
			assert.Equal(t, tc.wantBurst, l.Burst())
		})
	}
}

func TestRateLimitConfigDisabled(t *testing.T) {
	for _, r := range []float64{-1, -0.5} {
		l := RateLimitConfig{Rate: r}.limiter()
		assert.Nil(t, l)
		assert.True(t, allow(l))
	}
}

func TestLimiterAllowsBurstThenRejects(t *testing.T) {
	l := RateLimitConfig{Rate: 1, Burst: 3}.limiter()
	for i := 0; i < 3; i++ {
		assert.True(t, allow(l), "request %d should be allowed within burst", i)
	}
	assert.False(t, allow(l), "request beyond burst should be rejected")
}

func TestActionWithRateLimit(t *testing.T) {
	c := newContext("rl", "/", newTestApp(t))
	c.View(func() h.H { return h.Div() })

	c.Action(func() {}, WithRateLimit(1, 2))
	c.Action(func() {})

	var limited int
	for _, a := range c.actions {
		if a.limiter != nil {
			limited++
			assert.InDelta(t, 1.0, float64(a.limiter.Limit()), 0.001)
			assert.Equal(t, 2, a.limiter.Burst())
		}
	}
	assert.Equal(t, 1, limited, "only the action built WithRateLimit gets its own limiter")
}

func TestPageLimiterFromConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := newContext("d", "/", newTestApp(t))
		require.NotNil(t, c.limiter)
		assert.Equal(t, 20, c.limiter.Burst())
	})

	t.Run("disabled", func(t *testing.T) {
		v := newTestApp(t)
		v.Config(Options{ActionRateLimit: RateLimitConfig{Rate: -1}})
		assert.Nil(t, newContext("x", "/", v).limiter)
	})

	t.Run("custom", func(t *testing.T) {
		v := newTestApp(t)
		v.Config(Options{ActionRateLimit: RateLimitConfig{Rate: 50, Burst: 100}})
		c := newContext("c", "/", v)
		require.NotNil(t, c.limiter)
		assert.InDelta(t, 50.0, float64(c.limiter.Limit()), 0.001)
		assert.Equal(t, 100, c.limiter.Burst())
	})
}
