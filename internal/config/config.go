// Package config defines all configuration structures for prazojus.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters for the holiday-store cache.
// Leaving Addr empty disables the cache layer entirely; the engine then reads
// straight from PostgreSQL.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// CalendarConfig holds the business-day engine tunables.  All four window
// parameters are performance knobs: changing them never changes a computed
// deadline, only how many store round-trips a computation needs.
type CalendarConfig struct {
	// InitialMarginDays pads the first holiday-fetch window beyond the
	// requested business-day count.
	InitialMarginDays int `mapstructure:"initial_margin_days"`

	// GrowthIncrementDays is how far the window extends on each re-fetch.
	GrowthIncrementDays int `mapstructure:"growth_increment_days"`

	// LookaheadDays bounds the holiday window used by next-business-day.
	LookaheadDays int `mapstructure:"lookahead_days"`

	// MaxWindowGrowths caps window expansions per computation before the
	// engine aborts with a calendar-exhausted error.
	MaxWindowGrowths int `mapstructure:"max_window_growths"`

	// CacheCapacity bounds the applicable-holiday memoization cache.
	CacheCapacity int `mapstructure:"cache_capacity"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
}

// Validate checks cross-field consistency.  Defaults must be applied first.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.db_name is required")
	}
	if c.Calendar.InitialMarginDays <= 0 {
		return fmt.Errorf("calendar.initial_margin_days must be positive")
	}
	if c.Calendar.GrowthIncrementDays <= 0 {
		return fmt.Errorf("calendar.growth_increment_days must be positive")
	}
	if c.Calendar.LookaheadDays <= 0 {
		return fmt.Errorf("calendar.lookahead_days must be positive")
	}
	if c.Calendar.CacheCapacity <= 0 {
		return fmt.Errorf("calendar.cache_capacity must be positive")
	}
	return nil
}
