package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MinTemperature and MaxTemperature bound the sampling temperature the
	// completion endpoint accepts.
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

var (
	ErrInvalidMaxTokens   = errors.New("max tokens must be positive")
	ErrInvalidTemperature = errors.New("temperature out of range")
)

// QueryParams are the per-request generation parameters.
type QueryParams struct {
	MaxTokens   int64
	Temperature float64
}

// Validate checks the parameters against the provider's accepted ranges.
func (p QueryParams) Validate() error {
	if p.MaxTokens <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTokens, p.MaxTokens)
	}
	if p.Temperature < MinTemperature || p.Temperature > MaxTemperature {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrInvalidTemperature, p.Temperature, MinTemperature, MaxTemperature)
	}
	return nil
}

// Settings selects the model and the parameters used for chat and copilot queries.
type Settings struct {
	Model   string
	Query   QueryParams
	Copilot QueryParams
}

// DefaultSettings returns the settings a session starts with.
func DefaultSettings() Settings {
	return Settings{
		Model:   "GPT-3",
		Query:   QueryParams{MaxTokens: 60, Temperature: 0.5},
		Copilot: QueryParams{MaxTokens: 60, Temperature: 0.5},
	}
}

// Validate reports configuration errors before any request is made.
func (s Settings) Validate(models ModelRegistry) error {
	if _, err := models.Lookup(s.Model); err != nil {
		return err
	}
	if err := s.Query.Validate(); err != nil {
		return fmt.Errorf("query settings: %w", err)
	}
	if err := s.Copilot.Validate(); err != nil {
		return fmt.Errorf("copilot settings: %w", err)
	}
	return nil
}

// Params returns the parameter block for the given mode.
func (s Settings) Params(copilot bool) QueryParams {
	if copilot {
		return s.Copilot
	}
	return s.Query
}

// settingsFile mirrors the optional YAML settings file. Unset keys keep
// their base value.
type settingsFile struct {
	Model   *string           `yaml:"model"`
	Query   *paramsFile       `yaml:"query"`
	Copilot *paramsFile       `yaml:"copilot"`
	Models  map[string]string `yaml:"models"`
}

type paramsFile struct {
	MaxTokens   *int64   `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

func (p *paramsFile) apply(dst QueryParams) QueryParams {
	if p == nil {
		return dst
	}
	if p.MaxTokens != nil {
		dst.MaxTokens = *p.MaxTokens
	}
	if p.Temperature != nil {
		dst.Temperature = *p.Temperature
	}
	return dst
}

// LoadSettingsFile overlays the YAML file at path onto base and models.
// The returned registry is a copy; base and models are left untouched.
func LoadSettingsFile(path string, base Settings, models ModelRegistry) (Settings, ModelRegistry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, nil, fmt.Errorf("read settings file: %w", err)
	}
	return ParseSettings(content, base, models)
}

// ParseSettings overlays YAML content onto base and models.
func ParseSettings(content []byte, base Settings, models ModelRegistry) (Settings, ModelRegistry, error) {
	var file settingsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return Settings{}, nil, fmt.Errorf("parse settings: %w", err)
	}

	out := base
	if file.Model != nil {
		out.Model = strings.TrimSpace(*file.Model)
	}
	out.Query = file.Query.apply(out.Query)
	out.Copilot = file.Copilot.apply(out.Copilot)
	return out, models.Clone(file.Models), nil
}
