package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/carrental")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, "./data/images", cfg.ImageDir)
}

func TestLoadRequiredVars(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"missing DB_DSN", "DB_DSN"},
		{"missing JWT_SECRET", "JWT_SECRET"},
		{"missing ADMIN_PASSWORD_HASH", "ADMIN_PASSWORD_HASH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.missing, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadProductionFlag(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
}

func TestLoadInvalidTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
