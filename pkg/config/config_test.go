package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_GeolocationConfig(t *testing.T) {
	os.Setenv("GEOLOCATION_PROVIDER", "google")
	os.Setenv("GEOLOCATION_API_KEY", "test-key")
	defer func() {
		os.Unsetenv("GEOLOCATION_PROVIDER")
		os.Unsetenv("GEOLOCATION_API_KEY")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "google", cfg.Geolocation.Provider)
	assert.Equal(t, "test-key", cfg.Geolocation.APIKey)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("GEOLOCATION_PROVIDER")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("BCRYPT_COST")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "mock", cfg.Geolocation.Provider)
	assert.Equal(t, "tripfolio", cfg.Database.Database)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "tripfolio",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=tripfolio sslmode=require",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
