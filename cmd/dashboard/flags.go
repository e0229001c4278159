package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/sbilibin2017/flagwatch/internal/configs"
)

// flagValues holds raw command line values. Defaults live in configs so
// that a config file can still fill anything left unset here.
type flagValues struct {
	address        string
	apiBase        string
	dbName         string
	table          string
	pollInterval   int
	requestTimeout int
	logLevel       string
	configPath     string
}

var flags flagValues

func init() {
	registerFlags(pflag.CommandLine, &flags)
}

func registerFlags(fs *pflag.FlagSet, v *flagValues) {
	fs.StringVarP(&v.address, "address", "a", "", "address to listen on (default "+configs.DefaultDashboardAddress+")")
	fs.StringVar(&v.apiBase, "api-base", "", "base URL of the flags backend")
	fs.StringVar(&v.dbName, "db-name", "", "dataset name; selects the SQL query protocol")
	fs.StringVar(&v.table, "table", "", "table counted by the SQL query protocol (default "+configs.DefaultTableName+")")
	fs.IntVarP(&v.pollInterval, "poll-interval", "p", 0, "poll interval in seconds (default "+strconv.Itoa(configs.DefaultPollInterval)+")")
	fs.IntVar(&v.requestTimeout, "request-timeout", 0, "request timeout in seconds, 0 disables it")
	fs.StringVarP(&v.logLevel, "log-level", "l", "", "log level (default "+configs.DefaultLogLevel+")")
	fs.StringVarP(&v.configPath, "config", "c", "", "path to YAML or JSON config file")
}

// newConfig layers environment variables over flags over the config file
// over defaults.
func newConfig(fs *pflag.FlagSet, v *flagValues, getenv func(string) string) (*configs.DashboardConfig, error) {
	if fs.NArg() > 0 {
		return nil, errors.New("unknown flags or arguments are provided")
	}

	configPath := v.configPath
	if env := getenv("CONFIG"); env != "" {
		configPath = env
	}

	var file configs.DashboardFile
	if err := configs.LoadFile(configPath, &file); err != nil {
		return nil, err
	}

	pollInterval, err := envInt(getenv, "POLL_INTERVAL")
	if err != nil {
		return nil, err
	}
	requestTimeout, err := envInt(getenv, "REQUEST_TIMEOUT")
	if err != nil {
		return nil, err
	}

	return configs.NewDashboardConfig(
		configs.WithDashboardAddress(getenv("ADDRESS"), v.address, configs.Str(file.Address)),
		configs.WithAPIBase(getenv("API_BASE"), v.apiBase, configs.Str(file.APIBase)),
		configs.WithDBName(getenv("DB_NAME"), v.dbName, configs.Str(file.DBName)),
		configs.WithTableName(getenv("TABLE_NAME"), v.table, configs.Str(file.TableName)),
		configs.WithPollInterval(pollInterval, v.pollInterval, configs.Int(file.PollInterval)),
		configs.WithRequestTimeout(requestTimeout, v.requestTimeout, configs.Int(file.RequestTimeout)),
		configs.WithDashboardLogLevel(getenv("LOG_LEVEL"), v.logLevel, configs.Str(file.LogLevel)),
	)
}

func envInt(getenv func(string) string, key string) (int, error) {
	s := getenv(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q, must be integer seconds", key, s)
	}
	return n, nil
}
