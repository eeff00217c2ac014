package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "upi_registry", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.Equal(t, 10*time.Second, cfg.Registry.PrimaryLockTTL)
	assert.Equal(t, 5*time.Minute, cfg.Registry.VpaCacheTTL)
	assert.Equal(t, 10, cfg.Registry.BcryptCost)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	cfg.Registry.BcryptCost = 99
	assert.Error(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "upi", Password: "secret",
		Database: "upi_registry", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=upi password=secret dbname=upi_registry sslmode=disable",
		c.DatabaseDSN())
}
