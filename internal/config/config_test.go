package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ATLAS_MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, "schnauzenportal", cfg.DBName)
	assert.Equal(t, "pets", cfg.PetsCollection)
	assert.Equal(t, "de", cfg.WorkingLanguage)
	assert.Equal(t, "en", cfg.ResponseLocale)
	assert.Equal(t, 10, cfg.SearchLimit)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("ATLAS_MONGODB_URI", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresProviderCredentials(t *testing.T) {
	t.Setenv("ATLAS_MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)

	// The dummy provider needs no credentials at all.
	t.Setenv("LLM_PROVIDER", "dummy")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownLocale(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RESPONSE_LOCALE", "fr")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SEARCH_LIMIT", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.SearchLimit)
}
