package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate(DefaultModels()))

	id, err := DefaultModels().Lookup(s.Model)
	require.NoError(t, err)
	assert.Equal(t, "text-davinci-002", id)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{"unknown model", func(s *Settings) { s.Model = "GPT-9" }, ErrUnknownModel},
		{"zero max tokens", func(s *Settings) { s.Query.MaxTokens = 0 }, ErrInvalidMaxTokens},
		{"negative copilot tokens", func(s *Settings) { s.Copilot.MaxTokens = -1 }, ErrInvalidMaxTokens},
		{"temperature too high", func(s *Settings) { s.Query.Temperature = 2.5 }, ErrInvalidTemperature},
		{"temperature negative", func(s *Settings) { s.Copilot.Temperature = -0.1 }, ErrInvalidTemperature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(DefaultModels()), tt.wantErr)
		})
	}
}

func TestSettingsValidateBoundaries(t *testing.T) {
	s := DefaultSettings()
	s.Query.Temperature = MinTemperature
	s.Copilot.Temperature = MaxTemperature
	s.Query.MaxTokens = 1
	assert.NoError(t, s.Validate(DefaultModels()))
}

func TestParamsSelectsMode(t *testing.T) {
	s := DefaultSettings()
	s.Copilot.MaxTokens = 256
	assert.Equal(t, int64(60), s.Params(false).MaxTokens)
	assert.Equal(t, int64(256), s.Params(true).MaxTokens)
}

func TestParseSettingsOverlay(t *testing.T) {
	content := []byte(`
model: Local
query:
  temperature: 0.9
copilot:
  max_tokens: 200
models:
  Local: my-local-model
  "  ": ignored
`)
	base := DefaultSettings()
	models := DefaultModels()

	s, registry, err := ParseSettings(content, base, models)
	require.NoError(t, err)

	assert.Equal(t, "Local", s.Model)
	assert.Equal(t, int64(60), s.Query.MaxTokens)
	assert.Equal(t, 0.9, s.Query.Temperature)
	assert.Equal(t, int64(200), s.Copilot.MaxTokens)
	assert.Equal(t, 0.5, s.Copilot.Temperature)
	assert.NoError(t, s.Validate(registry))

	_, err = models.Lookup("Local")
	assert.ErrorIs(t, err, ErrUnknownModel, "base registry must not be mutated")
	assert.Equal(t, "GPT-3", base.Model)
}

func TestParseSettingsRejectsMalformedYAML(t *testing.T) {
	_, _, err := ParseSettings([]byte("query: [1, 2"), DefaultSettings(), DefaultModels())
	assert.Error(t, err)
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: GPT-3.5\n"), 0o644))

	s, registry, err := LoadSettingsFile(path, DefaultSettings(), DefaultModels())
	require.NoError(t, err)
	assert.Equal(t, "GPT-3.5", s.Model)

	id, err := registry.Lookup(s.Model)
	require.NoError(t, err)
	assert.Equal(t, "text-davinci-003", id)

	_, _, err = LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"), DefaultSettings(), DefaultModels())
	assert.Error(t, err)
}

func TestModelRegistryLabelsSorted(t *testing.T) {
	labels := ModelRegistry{"b": "2", "a": "1", "c": "3"}.Labels()
	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestNormalize(t *testing.T) {
	cfg := Normalize(Config{
		APIKey:                "  sk-test \n",
		BaseURL:               " http://localhost ",
		MaxCredentialAttempts: -3,
		RequestTimeout:        -1,
	})
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "http://localhost", cfg.BaseURL)
	assert.Zero(t, cfg.MaxCredentialAttempts)
	assert.Zero(t, cfg.RequestTimeout)

	def := DefaultConfig()
	assert.Equal(t, DefaultMaxCredentialAttempts, def.MaxCredentialAttempts)
	assert.Equal(t, DefaultRequestTimeout, def.RequestTimeout)
}
