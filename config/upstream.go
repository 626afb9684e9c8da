package config

import (
	"strings"
	"time"
)

// UpstreamConfig contains commerce backend configuration.
type UpstreamConfig struct {
	// BaseURL is the backend root, e.g. "https://api.podomall.com".
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds each backend request end to end.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.Timeout <= 0 {
		u.Timeout = 15 * time.Second
	}
}
