package configs

import (
	"fmt"
	"regexp"
	"strings"
)

// Dashboard defaults.
const (
	DefaultDashboardAddress = ":8081"
	DefaultPollInterval     = 10 // seconds
	DefaultTableName        = "flagged_data"
	DefaultLogLevel         = "info"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DashboardConfig holds configuration parameters for the KPI dashboard.
type DashboardConfig struct {
	Address        string `json:"address"`         // Address the dashboard listens on
	APIBase        string `json:"api_base"`        // Base URL of the flags backend, empty means unset
	DBName         string `json:"db_name"`         // Dataset name, selects the query service protocol when set
	TableName      string `json:"table_name"`      // Record collection counted by the query service
	PollInterval   int    `json:"poll_interval"`   // Poll interval in seconds
	RequestTimeout int    `json:"request_timeout"` // Per-request timeout in seconds, 0 disables it
	LogLevel       string `json:"log_level"`       // zap level name
}

// DashboardOpt applies a configuration option to DashboardConfig.
type DashboardOpt func(*DashboardConfig) error

// NewDashboardConfig creates a DashboardConfig with defaults and applies opts in order.
func NewDashboardConfig(opts ...DashboardOpt) (*DashboardConfig, error) {
	cfg := &DashboardConfig{
		Address:      DefaultDashboardAddress,
		TableName:    DefaultTableName,
		PollInterval: DefaultPollInterval,
		LogLevel:     DefaultLogLevel,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithDashboardAddress sets Address to the first non-empty value.
func WithDashboardAddress(addrs ...string) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		if v, ok := firstNonEmpty(addrs); ok {
			cfg.Address = v
		}
		return nil
	}
}

// WithAPIBase sets APIBase to the first non-empty value, trailing slashes removed.
func WithAPIBase(bases ...string) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		if v, ok := firstNonEmpty(bases); ok {
			cfg.APIBase = strings.TrimRight(v, "/")
		}
		return nil
	}
}

// WithDBName sets DBName to the first non-empty value.
func WithDBName(names ...string) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		if v, ok := firstNonEmpty(names); ok {
			cfg.DBName = v
		}
		return nil
	}
}

// WithTableName sets TableName to the first non-empty value.
// The name ends up inside SQL text, so only plain identifiers are accepted.
func WithTableName(names ...string) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		v, ok := firstNonEmpty(names)
		if !ok {
			return nil
		}
		if !identifierRe.MatchString(v) {
			return fmt.Errorf("invalid table name %q: must be a plain SQL identifier", v)
		}
		cfg.TableName = v
		return nil
	}
}

// WithPollInterval sets PollInterval to the first positive value.
func WithPollInterval(intervals ...int) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		if v, ok := firstPositive(intervals); ok {
			cfg.PollInterval = v
		}
		return nil
	}
}

// WithRequestTimeout sets RequestTimeout to the first positive value.
func WithRequestTimeout(timeouts ...int) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		if v, ok := firstPositive(timeouts); ok {
			cfg.RequestTimeout = v
		}
		return nil
	}
}

// WithDashboardLogLevel sets LogLevel to the first non-empty value.
func WithDashboardLogLevel(levels ...string) DashboardOpt {
	return func(cfg *DashboardConfig) error {
		if v, ok := firstNonEmpty(levels); ok {
			cfg.LogLevel = v
		}
		return nil
	}
}

func firstNonEmpty(values []string) (string, bool) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func firstPositive(values []int) (int, bool) {
	for _, v := range values {
		if v > 0 {
			return v, true
		}
	}
	return 0, false
}
