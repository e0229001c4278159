package http

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Opt configures a *resty.Client.
type Opt func(*resty.Client)

// New creates a resty client for baseURL with opts applied in order.
// Retries stay disabled: a failed read is superseded by the next poll.
func New(baseURL string, opts ...Opt) *resty.Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithTimeout sets the request timeout to the first positive duration.
// Without it requests never time out.
func WithTimeout(timeouts ...time.Duration) Opt {
	return func(c *resty.Client) {
		for _, t := range timeouts {
			if t > 0 {
				c.SetTimeout(t)
				return
			}
		}
	}
}

// WithUserAgent sets the User-Agent header to the first non-empty value.
func WithUserAgent(agents ...string) Opt {
	return func(c *resty.Client) {
		for _, a := range agents {
			if strings.TrimSpace(a) != "" {
				c.SetHeader("User-Agent", a)
				return
			}
		}
	}
}

// WithLogger routes resty's internal diagnostics to a zap logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *resty.Client) {
		if logger != nil {
			c.SetLogger(logger.Named("resty").Sugar())
		}
	}
}
