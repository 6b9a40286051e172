package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionRestoresPersistedState(t *testing.T) {
	cfg = newViper()
	cfg.Set("token", "stored-token")
	cfg.Set("gsfid", "1a2b")
	cfg.Set("device.sdk", 28)
	cfg.Set("device.model", "Pixel 3")
	opts.locale = "nl_NL"

	session := newSession()

	assert.Equal(t, "stored-token", session.Token())
	assert.Equal(t, "1a2b", session.GSFID())
	assert.Equal(t, "nl_NL", session.Locale())
	assert.Equal(t, 28, session.Profile().SdkVersion())
}

func TestNewSessionDefaults(t *testing.T) {
	cfg = newViper()
	opts.locale = "en_US"

	session := newSession()

	assert.Empty(t, session.Token())
	assert.Empty(t, session.GSFID())
	assert.Equal(t, 25, session.Profile().SdkVersion())
}

func TestConfigPrecedence(t *testing.T) {
	cfg = newViper()
	t.Setenv("PLAY_EMAIL", "env@example.com")

	// Environment variables resolve through the prefix and key replacer.
	require.Equal(t, "env@example.com", cfg.GetString("email"))
	t.Setenv("PLAY_DEVICE_SDK", "29")
	require.Equal(t, 29, cfg.GetInt("device.sdk"))

	// Explicit sets (flag-backed values) beat the environment.
	cfg.Set("email", "flag@example.com")
	assert.Equal(t, "flag@example.com", cfg.GetString("email"))
}
