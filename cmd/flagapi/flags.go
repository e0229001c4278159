package main

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/sbilibin2017/flagwatch/internal/configs"
)

type flagValues struct {
	address       string
	databaseDSN   string
	migrationsDir string
	logLevel      string
	configPath    string
}

var flags flagValues

func init() {
	registerFlags(pflag.CommandLine, &flags)
}

func registerFlags(fs *pflag.FlagSet, v *flagValues) {
	fs.StringVarP(&v.address, "address", "a", "", "address to listen on (default "+configs.DefaultFlagAPIAddress+")")
	fs.StringVarP(&v.databaseDSN, "database-dsn", "d", "", "Postgres DSN or SQLite path, empty keeps flags in memory")
	fs.StringVar(&v.migrationsDir, "migrations-dir", "", "directory with goose migrations (default "+configs.DefaultMigrationsDir+")")
	fs.StringVarP(&v.logLevel, "log-level", "l", "", "log level (default "+configs.DefaultLogLevel+")")
	fs.StringVarP(&v.configPath, "config", "c", "", "path to YAML or JSON config file")
}

// newConfig layers environment variables over flags over the config file
// over defaults.
func newConfig(fs *pflag.FlagSet, v *flagValues, getenv func(string) string) (*configs.FlagAPIConfig, error) {
	if fs.NArg() > 0 {
		return nil, errors.New("unknown flags or arguments are provided")
	}

	configPath := v.configPath
	if env := getenv("CONFIG"); env != "" {
		configPath = env
	}

	var file configs.FlagAPIFile
	if err := configs.LoadFile(configPath, &file); err != nil {
		return nil, err
	}

	return configs.NewFlagAPIConfig(
		configs.WithFlagAPIAddress(getenv("ADDRESS"), v.address, configs.Str(file.Address)),
		configs.WithDatabaseDSN(getenv("DATABASE_DSN"), v.databaseDSN, configs.Str(file.DatabaseDSN)),
		configs.WithMigrationsDir(getenv("MIGRATIONS_DIR"), v.migrationsDir, configs.Str(file.MigrationsDir)),
		configs.WithFlagAPILogLevel(getenv("LOG_LEVEL"), v.logLevel, configs.Str(file.LogLevel)),
	), nil
}
