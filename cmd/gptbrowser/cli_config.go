package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	configpkg "github.com/minhyannv/gptbrowser/pkg/config"
)

// parseCLIConfig loads flags and environment values into runtime config.
// The caller is responsible for loading .env files before getenv is consulted.
func parseCLIConfig(args []string, getenv func(string) string, stderr io.Writer) (configpkg.Config, error) {
	defaults := configpkg.DefaultConfig()

	fs := flag.NewFlagSet("gptbrowser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	settingsFile := fs.String("settings", "", "YAML settings file overriding the default model and query parameters")
	exportPath := fs.String("export", "", "Write the session history as JSON to this path on exit")
	copilot := fs.Bool("copilot", false, "Use copilot parameters instead of query parameters")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose request logging on stderr")
	maxAttempts := fs.Int("max_key_attempts", defaults.MaxCredentialAttempts, "Max consecutive API key prompts (0 = unlimited)")
	timeout := fs.Duration("timeout", defaults.RequestTimeout, "Per-request timeout (0 disables)")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}
	if fs.NArg() > 0 {
		return configpkg.Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaults
	cfg.SettingsFile = *settingsFile
	cfg.ExportPath = *exportPath
	cfg.Copilot = *copilot
	cfg.Verbose = *verbose
	cfg.MaxCredentialAttempts = *maxAttempts
	cfg.RequestTimeout = *timeout
	cfg.APIKey = getenv("OPENAI_API_KEY")
	cfg.BaseURL = getenv("OPENAI_BASE_URL")
	return configpkg.Normalize(cfg), nil
}
