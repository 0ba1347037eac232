package config

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local:8080/")
	t.Setenv("PORT", "4000")

	cfg, err := LoadConfig(quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "http://api.local:8080", cfg.APIBaseURL)
	assert.Equal(t, ":4000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.PageSize)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadConfigRejectsBadURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "api.local")

	_, err := LoadConfig(quietLogger())
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local")
	t.Setenv("API_TIMEOUT", "not-a-duration")

	_, err := LoadConfig(quietLogger())
	assert.Error(t, err)
}
