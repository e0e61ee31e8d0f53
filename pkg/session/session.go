// Package session drives the interactive query loop against a completion endpoint.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minhyannv/gptbrowser/pkg/completion"
	"github.com/minhyannv/gptbrowser/pkg/config"
	loggerpkg "github.com/minhyannv/gptbrowser/pkg/logger"
)

const (
	queryPrompt      = "Enter your query ('x' to exit)"
	credentialPrompt = "Please enter your OpenAI API key"
	credentialNotice = "API key not found."
	exitCommand      = "x"
)

// ErrCredentialRequired is returned when the operator exhausts the API key prompts.
var ErrCredentialRequired = errors.New("api key is required")

// HistoryEntry is one successful exchange.
type HistoryEntry struct {
	Query           string `json:"query"`
	Response        string `json:"response"`
	CopilotResponse string `json:"copilot_response"`
}

// Session owns the credential, settings and history of one interactive run.
type Session struct {
	settings   config.Settings
	models     config.ModelRegistry
	completer  completion.Completer
	credential string
	history    []HistoryEntry

	in  *bufio.Reader
	out io.Writer

	copilot     bool
	maxAttempts int
	timeout     time.Duration
	now         func() time.Time

	logger  loggerpkg.Logger
	verbose bool
}

// New validates settings against models and builds a Session. Settings and
// the registry are copied, so later changes by the caller are not observed.
func New(settings config.Settings, models config.ModelRegistry, completer completion.Completer, opts ...Option) (*Session, error) {
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	if err := settings.Validate(models); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	deps := sessionDeps{
		in:     strings.NewReader(""),
		out:    io.Discard,
		logger: loggerpkg.NopLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.in == nil {
		deps.in = strings.NewReader("")
	}
	if deps.out == nil {
		deps.out = io.Discard
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}

	return &Session{
		settings:    settings,
		models:      models.Clone(nil),
		completer:   completer,
		credential:  deps.credential,
		in:          bufio.NewReader(deps.in),
		out:         deps.out,
		copilot:     deps.copilot,
		maxAttempts: deps.maxAttempts,
		timeout:     deps.timeout,
		now:         deps.now,
		logger:      deps.logger,
		verbose:     deps.verbose,
	}, nil
}

// Credential returns the active API key.
func (s *Session) Credential() string { return s.credential }

// Settings returns the session's settings.
func (s *Session) Settings() config.Settings { return s.settings }

// History returns a copy of the recorded exchanges in arrival order.
func (s *Session) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// PromptUser writes message followed by ": " and returns the next input line
// with surrounding whitespace removed. io.EOF is returned only when the input
// is exhausted before any character is read.
func (s *Session) PromptUser(message string) (string, error) {
	_, _ = fmt.Fprint(s.out, message+": ")
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// EnsureCredential prompts until a non-empty API key is stored.
func (s *Session) EnsureCredential() error {
	for attempts := 0; s.credential == ""; attempts++ {
		if s.maxAttempts > 0 && attempts >= s.maxAttempts {
			loggerpkg.Warn(s.logger, "api key prompt limit reached", map[string]any{"attempts": attempts})
			return fmt.Errorf("%w: no key after %d attempts", ErrCredentialRequired, attempts)
		}
		_, _ = fmt.Fprintln(s.out, credentialNotice)
		key, err := s.PromptUser(credentialPrompt)
		if err != nil {
			return fmt.Errorf("read api key: %w", err)
		}
		s.credential = key
	}
	loggerpkg.Debug(s.verbose, s.logger, "api key configured", nil)
	return nil
}

// Chat runs the query loop until the operator enters "x" or closes the input.
func (s *Session) Chat(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.EnsureCredential(); err != nil {
		return err
	}

	label := s.settings.Model
	modelID, err := s.models.Lookup(label)
	if err != nil {
		return fmt.Errorf("resolve model: %w", err)
	}
	header := "Chatting"
	if s.copilot {
		header = "Copilot"
	}
	_, _ = fmt.Fprintf(s.out, "\n%s with %s (%s)\n", header, label, modelID)

	for {
		query, err := s.PromptUser(queryPrompt)
		if errors.Is(err, io.EOF) {
			loggerpkg.Debug(s.verbose, s.logger, "input closed", nil)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read query: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(query), exitCommand) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		response, err := s.complete(ctx, modelID, query)
		if err == nil {
			s.record(query, response)
			_, _ = fmt.Fprintln(s.out, response)
			continue
		}
		if !completion.IsAPIError(err) {
			return fmt.Errorf("completion request: %w", err)
		}

		_, _ = fmt.Fprintf(s.out, "OpenAI API error: %v\n", err)
		loggerpkg.Warn(s.logger, "api key rejected", map[string]any{"error": err.Error()})
		s.credential = ""
		if err := s.EnsureCredential(); err != nil {
			return err
		}
	}
}

// Run prints the startup banner and starts Chat.
func (s *Session) Run(ctx context.Context) error {
	_, _ = fmt.Fprintln(s.out, "GPT Browser")
	_, _ = fmt.Fprintf(s.out, "Date: %s\n", s.now().Format("2006-01-02"))
	return s.Chat(ctx)
}

func (s *Session) complete(ctx context.Context, modelID, query string) (string, error) {
	params := s.settings.Params(s.copilot)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	loggerpkg.Debug(s.verbose, s.logger, "completion request", map[string]any{
		"model":       modelID,
		"max_tokens":  params.MaxTokens,
		"temperature": params.Temperature,
		"bytes":       len(query),
	})
	text, err := s.completer.Complete(ctx, completion.Request{
		APIKey:      s.credential,
		Model:       modelID,
		Prompt:      query,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *Session) record(query, response string) {
	entry := HistoryEntry{Query: query, Response: response}
	if s.copilot {
		entry.CopilotResponse = response
	}
	s.history = append(s.history, entry)
}
