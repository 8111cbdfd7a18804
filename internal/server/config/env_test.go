package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/auth")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("CORS_ORIGIN", "https://app.example.com")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, c.ListenAddr, ":9999")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@db:5432/auth")
	assert.Equal(t, c.SecretKey, "env-secret")
	assert.Equal(t, c.TokenTTL, 2*time.Hour)
	assert.Equal(t, c.BcryptCost, 10)
	assert.Equal(t, c.RateLimitWindow, time.Minute)
	assert.Equal(t, c.RateLimitMax, 5)
	assert.Equal(t, c.CORSOrigin, "https://app.example.com")
}

func TestParseEnv_MalformedValuesKeepCurrent(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "zero")
	t.Setenv("RATE_LIMIT_MAX", "-3")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, c.TokenTTL, 24*time.Hour)
	assert.Equal(t, c.BcryptCost, 12)
	assert.Equal(t, c.RateLimitMax, 100)
}
