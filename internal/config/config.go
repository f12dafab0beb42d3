package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v8"

	"github.com/spendtrace/api/internal/logger"
)

type ServerConfig struct {
	Port              string `toml:"port" env:"SPENDTRACE_PORT"`
	ReadHeaderTimeout int    `toml:"read_header_timeout" env:"SPENDTRACE_READ_HEADER_TIMEOUT"` // seconds
	ShutdownTimeout   int    `toml:"shutdown_timeout" env:"SPENDTRACE_SHUTDOWN_TIMEOUT"`       // seconds
}

type DBConfig struct {
	Path            string `toml:"path" env:"SPENDTRACE_DB"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"SPENDTRACE_DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"SPENDTRACE_DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"SPENDTRACE_DB_CONN_MAX_LIFETIME"` // seconds
	JournalMode     string `toml:"journal_mode" env:"SPENDTRACE_DB_JOURNAL_MODE"`
	Synchronous     string `toml:"synchronous" env:"SPENDTRACE_DB_SYNCHRONOUS"`
	BusyTimeout     int    `toml:"busy_timeout" env:"SPENDTRACE_DB_BUSY_TIMEOUT"` // milliseconds
	CacheSize       int    `toml:"cache_size" env:"SPENDTRACE_DB_CACHE_SIZE"`
}

type Config struct {
	Server ServerConfig  `toml:"server"`
	DB     DBConfig      `toml:"db"`
	Logger logger.Config `toml:"logger"`
}

const (
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 3
	defaultShutdownTimeout   = 10
	defaultDBPath            = "spendtrace.db"
	defaultLogLevel          = logger.LevelInfo
	defaultLogFormat         = logger.FormatText
	defaultLogOutput         = "stdout"
)

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              defaultPort,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			ShutdownTimeout:   defaultShutdownTimeout,
		},
		DB: DBConfig{
			Path:        defaultDBPath,
			JournalMode: "WAL",
			BusyTimeout: 5000,
		},
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
	}
}

// Parse builds the configuration from defaults, an optional TOML file and
// environment variables, in that order of precedence (env wins).
func Parse(file string) (*Config, error) {
	conf := defaults()

	if file != "" {
		bytes, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}

		if err = toml.Unmarshal(bytes, conf); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	}

	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return conf, nil
}
