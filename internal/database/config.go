package database

import (
	"finboard/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver       string
	DSN          string
	SQLitePath   string
	MigrationURL string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:       cfg.StoreDriver,
		DSN:          cfg.DSN(),
		SQLitePath:   cfg.SQLitePath,
		MigrationURL: cfg.MigrationURL(),
	}
}
