package config

import "time"

// RateLimitConfig caps requests per client address within a fixed window.
// A non-positive Requests value disables limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func NewRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Requests: getEnvInt("RATE_LIMIT_REQUESTS", 1000),
		Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func (c *RateLimitConfig) Enabled() bool {
	return c.Requests > 0
}
