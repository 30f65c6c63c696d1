// Package config holds the resolved runtime settings of parabind.
package config

import (
	"context"
	"time"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/logging"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/store"
)

// DefaultDB is the database path used when none is configured.
const DefaultDB = "parabind.db"

// Config is the validated configuration of one invocation.
type Config struct {
	DBPath    string
	LogLevel  logging.Level
	LogFormat logging.Format
	CacheTTL  time.Duration
}

// Load validates raw settings as they arrive from flags or the environment.
func Load(dbPath, logLevel, logFormat string, cacheTTL time.Duration) (Config, error) {
	if dbPath == "" {
		dbPath = DefaultDB
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return Config{}, &errors.ValidationError{Field: "log-level", Value: logLevel, Message: err.Error()}
	}
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return Config{}, &errors.ValidationError{Field: "log-format", Value: logFormat, Message: err.Error()}
	}
	if cacheTTL < 0 {
		return Config{}, errors.NewValidation("cache-ttl", "must not be negative")
	}
	return Config{
		DBPath:    dbPath,
		LogLevel:  level,
		LogFormat: format,
		CacheTTL:  cacheTTL,
	}, nil
}

// InitLogging installs the configured global logger.
func (c Config) InitLogging() {
	logging.InitLogger(c.LogLevel, c.LogFormat)
}

// OpenStore opens the configured database.
func (c Config) OpenStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, c.DBPath, store.WithCacheTTL(c.CacheTTL))
}
