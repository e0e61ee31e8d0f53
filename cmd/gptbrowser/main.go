// Package main is the interactive completion client entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/minhyannv/gptbrowser/pkg/completion"
	configpkg "github.com/minhyannv/gptbrowser/pkg/config"
	loggerpkg "github.com/minhyannv/gptbrowser/pkg/logger"
	"github.com/minhyannv/gptbrowser/pkg/session"
)

// main is the program entry point.
func main() {
	_ = godotenv.Load()

	config, err := parseCLIConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	appLogger := loggerpkg.NewWriterLogger(os.Stderr, config.Verbose)
	client := completion.NewOpenAIClient(completion.OpenAIOptions{BaseURL: config.BaseURL})
	if err := run(context.Background(), config, client, appLogger, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run builds a session from config and drives it to completion.
func run(
	ctx context.Context,
	config configpkg.Config,
	completer completion.Completer,
	appLogger loggerpkg.Logger,
	in io.Reader,
	out io.Writer,
) error {
	settings := configpkg.DefaultSettings()
	models := configpkg.DefaultModels()
	if config.SettingsFile != "" {
		var err error
		settings, models, err = configpkg.LoadSettingsFile(config.SettingsFile, settings, models)
		if err != nil {
			return err
		}
		loggerpkg.Debug(config.Verbose, appLogger, "settings loaded", map[string]any{
			"path":  config.SettingsFile,
			"model": settings.Model,
		})
	}

	sess, err := session.New(settings, models, completer,
		session.WithIO(in, out),
		session.WithLogger(appLogger, config.Verbose),
		session.WithCredential(config.APIKey),
		session.WithCopilot(config.Copilot),
		session.WithMaxCredentialAttempts(config.MaxCredentialAttempts),
		session.WithRequestTimeout(config.RequestTimeout),
	)
	if err != nil {
		return err
	}

	runErr := sess.Run(ctx)
	if config.ExportPath != "" {
		path, err := sess.ExportHistory(config.ExportPath)
		if err != nil {
			loggerpkg.Error(appLogger, "history export failed", map[string]any{"error": err.Error()})
		} else {
			_, _ = fmt.Fprintf(out, "\nChat history exported to %s\n", path)
		}
	}
	return runErr
}
