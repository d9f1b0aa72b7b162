package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 0.5, cfg.Payment.AdvancePercent)
	assert.Equal(t, 50000.0, cfg.Payment.AdvanceCap)
	assert.Equal(t, int64(100), cfg.Payment.MinOrderMinor)
	assert.Equal(t, 48*time.Hour, cfg.Booking.RescheduleWindow)
	assert.Equal(t, 7, cfg.Booking.CancelWindowDays)
	assert.False(t, cfg.IsProdLike())
}

func TestFromEnv_ProdRejectsDefaultSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnv_ProdWithSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "release")
	t.Setenv("JWT_SECRET", "s1")
	t.Setenv("INTERNAL_TOKEN", "s2")
	t.Setenv("GATEWAY_KEY_SECRET", "s3")
	t.Setenv("GATEWAY_WEBHOOK_SECRET", "s4")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
}

func TestFromEnv_InvalidAdvancePercent(t *testing.T) {
	t.Setenv("ADVANCE_PERCENT", "1.5")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADVANCE_PERCENT")
}

func TestFromEnv_CORSList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
