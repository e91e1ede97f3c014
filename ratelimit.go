package addlist

import "golang.org/x/time/rate"

// RateLimitConfig is a token bucket refilled at Rate tokens per second and
// holding at most Burst. Zero fields take the defaults. A negative Rate turns
// limiting off.
type RateLimitConfig struct {
	Rate  float64
	Burst int
}

var defaultActionLimit = RateLimitConfig{Rate: 10, Burst: 20}

func (rl RateLimitConfig) withDefaults() RateLimitConfig {
	if rl.Rate == 0 {
		rl.Rate = defaultActionLimit.Rate
	}
	if rl.Burst == 0 {
		rl.Burst = defaultActionLimit.Burst
	}
	return rl
}

func (rl RateLimitConfig) limiter() *rate.Limiter {
	if rl.Rate < 0 {
		return nil
	}
	rl = rl.withDefaults()
	return rate.NewLimiter(rate.Limit(rl.Rate), rl.Burst)
}

// allow takes a token from l. A nil limiter always allows.
func allow(l *rate.Limiter) bool {
	return l == nil || l.Allow()
}

// ActionOption configures an action registered with Context.Action.
type ActionOption func(*action)

type action struct {
	run     func()
	limiter *rate.Limiter
}

// WithRateLimit gives the action its own bucket, checked after the page's.
func WithRateLimit(r float64, burst int) ActionOption {
	return func(a *action) {
		a.limiter = RateLimitConfig{Rate: r, Burst: burst}.limiter()
	}
}
