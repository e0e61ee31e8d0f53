package session

import (
	"io"
	"strings"
	"time"

	loggerpkg "github.com/minhyannv/gptbrowser/pkg/logger"
)

// Option configures optional runtime dependencies for a Session.
type Option func(*sessionDeps)

type sessionDeps struct {
	in          io.Reader
	out         io.Writer
	logger      loggerpkg.Logger
	verbose     bool
	credential  string
	copilot     bool
	maxAttempts int
	timeout     time.Duration
	now         func() time.Time
}

// WithIO sets the console streams. Defaults to an empty reader and io.Discard.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(d *sessionDeps) {
		d.in = in
		d.out = out
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(d *sessionDeps) {
		d.logger = l
		d.verbose = verbose
	}
}

// WithCredential seeds the API key, typically from the environment.
func WithCredential(key string) Option {
	return func(d *sessionDeps) {
		d.credential = strings.TrimSpace(key)
	}
}

// WithCopilot switches the session to copilot parameters.
func WithCopilot(enabled bool) Option {
	return func(d *sessionDeps) {
		d.copilot = enabled
	}
}

// WithMaxCredentialAttempts bounds consecutive API key prompts. Zero means no limit.
func WithMaxCredentialAttempts(n int) Option {
	return func(d *sessionDeps) {
		if n < 0 {
			n = 0
		}
		d.maxAttempts = n
	}
}

// WithRequestTimeout caps each completion call. Zero disables the timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(d *sessionDeps) {
		d.timeout = timeout
	}
}

// WithClock overrides the time source used for banners and export names.
func WithClock(now func() time.Time) Option {
	return func(d *sessionDeps) {
		if now != nil {
			d.now = now
		}
	}
}
