package configs

// Flag API defaults.
const (
	DefaultFlagAPIAddress = ":8080"
	DefaultMigrationsDir  = "migrations"
)

// FlagAPIConfig holds configuration parameters for the flags backend.
type FlagAPIConfig struct {
	Address       string `json:"address"`        // Address the API listens on
	DatabaseDSN   string `json:"database_dsn"`   // Postgres or SQLite DSN, empty means in-memory storage
	MigrationsDir string `json:"migrations_dir"` // Directory with goose migrations
	LogLevel      string `json:"log_level"`      // zap level name
}

// FlagAPIOpt applies a configuration option to FlagAPIConfig.
type FlagAPIOpt func(*FlagAPIConfig)

// NewFlagAPIConfig creates a FlagAPIConfig with defaults and applies opts in order.
func NewFlagAPIConfig(opts ...FlagAPIOpt) *FlagAPIConfig {
	cfg := &FlagAPIConfig{
		Address:       DefaultFlagAPIAddress,
		MigrationsDir: DefaultMigrationsDir,
		LogLevel:      DefaultLogLevel,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithFlagAPIAddress sets Address to the first non-empty value.
func WithFlagAPIAddress(addrs ...string) FlagAPIOpt {
	return func(cfg *FlagAPIConfig) {
		if v, ok := firstNonEmpty(addrs); ok {
			cfg.Address = v
		}
	}
}

// WithDatabaseDSN sets DatabaseDSN to the first non-empty value.
func WithDatabaseDSN(dsns ...string) FlagAPIOpt {
	return func(cfg *FlagAPIConfig) {
		if v, ok := firstNonEmpty(dsns); ok {
			cfg.DatabaseDSN = v
		}
	}
}

// WithMigrationsDir sets MigrationsDir to the first non-empty value.
func WithMigrationsDir(dirs ...string) FlagAPIOpt {
	return func(cfg *FlagAPIConfig) {
		if v, ok := firstNonEmpty(dirs); ok {
			cfg.MigrationsDir = v
		}
	}
}

// WithFlagAPILogLevel sets LogLevel to the first non-empty value.
func WithFlagAPILogLevel(levels ...string) FlagAPIOpt {
	return func(cfg *FlagAPIConfig) {
		if v, ok := firstNonEmpty(levels); ok {
			cfg.LogLevel = v
		}
	}
}
