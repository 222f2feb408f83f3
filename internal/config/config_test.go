package config_test

import (
	"testing"

	"github.com/abhishek972986/porter-managment/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FRONTEND_URL", "https://a.example")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 15, cfg.JWTAccessMinutes)
	assert.Equal(t, 20, cfg.LoginRateLimit)
	assert.Equal(t, "templates/works.template.html", cfg.DocumentTemplatePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
