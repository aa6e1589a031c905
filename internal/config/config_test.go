package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "app",
			Password: "secret",
			DBName:   "restaurantapp",
		},
	}

	dsn := cfg.DSN()

	assert.Equal(t, "app:secret@tcp(localhost:3306)/restaurantapp?parseTime=true&charset=utf8mb4&clientFoundRows=true", dsn)

	// clientFoundRows makes UPDATE report matched rows instead of changed
	// rows; without it a no-op update of an existing row reads as missing.
	assert.Contains(t, dsn, "clientFoundRows=true")
}
