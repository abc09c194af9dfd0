package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "false")

	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "sermon_engine", cfg.Database.Database)
	assert.Equal(t, "none", cfg.Tagger.Provider)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "false")
	t.Setenv("PORT", "9999")
	t.Setenv("PGDATABASE", "themes_test")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "themes_test", cfg.Database.Database)
}

func TestLoad_AuthRequiresJWKS(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "true")
	t.Setenv("AUTH_JWKS_URL", "")

	_, err := Load("dev")
	assert.Error(t, err)
}

func TestLoad_TaggerValidation(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "false")
	t.Setenv("TAGGER_PROVIDER", "openai")
	t.Setenv("TAGGER_OPENAI_MODEL", "")

	_, err := Load("dev")
	assert.Error(t, err)

	t.Setenv("TAGGER_OPENAI_MODEL", "gpt-4o-mini")
	cfg, err := Load("dev")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Tagger.Provider)
}

func TestLoad_UnknownTaggerProvider(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "false")
	t.Setenv("TAGGER_PROVIDER", "bard")

	_, err := Load("dev")
	assert.Error(t, err)
}
