package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DashboardFile mirrors the optional dashboard config file.
// Pointer fields distinguish "absent" from zero values.
type DashboardFile struct {
	Address        *string `yaml:"address"`
	APIBase        *string `yaml:"api_base"`
	DBName         *string `yaml:"db_name"`
	TableName      *string `yaml:"table_name"`
	PollInterval   *int    `yaml:"poll_interval"`
	RequestTimeout *int    `yaml:"request_timeout"`
	LogLevel       *string `yaml:"log_level"`
}

// FlagAPIFile mirrors the optional flag API config file.
type FlagAPIFile struct {
	Address       *string `yaml:"address"`
	DatabaseDSN   *string `yaml:"database_dsn"`
	MigrationsDir *string `yaml:"migrations_dir"`
	LogLevel      *string `yaml:"log_level"`
}

// LoadFile decodes a YAML config file into dst. JSON files decode too,
// YAML being a superset of JSON. An empty path leaves dst untouched.
func LoadFile(path string, dst any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

// Str dereferences an optional string, returning "" for nil.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Int dereferences an optional int, returning 0 for nil.
func Int(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
