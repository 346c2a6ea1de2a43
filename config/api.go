package config

import (
	"strings"
	"time"
)

// APIConfig contains configuration for the records API client.
type APIConfig struct {
	// BaseURL is the root of the records API.
	BaseURL string `env:"RECORDS_API_URL" envDefault:"http://localhost:1123"`

	// Timeout bounds every call to the records API.
	Timeout time.Duration `env:"RECORDS_API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to records API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}
