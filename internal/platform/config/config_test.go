package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestViper(values map[string]string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.True(t, cfg.AllowRegistration)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Empty(t, cfg.AllowanceCron)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestAllowRegistration(t *testing.T) {
	tests := map[string]bool{
		"false": false,
		"FALSE": false,
		"true":  true,
		"0":     true,
		"":      true,
	}
	for raw, want := range tests {
		cfg := fromViper(newTestViper(map[string]string{"ALLOW_REGISTRATION": raw}))
		assert.Equal(t, want, cfg.AllowRegistration, "ALLOW_REGISTRATION=%q", raw)
	}
}

func TestInvalidJWTExpiryFallsBack(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]string{"JWT_EXPIRY_DURATION": "soon"}))
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
}

func TestCORSOriginsAreSplit(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]string{"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,,"}))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
