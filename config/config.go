package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"

	"golang.org/x/term"
)

const (
	KeyAPIKey  = "EMAILBISON_API_KEY"
	KeyBaseURL = "EMAILBISON_BASE_URL"
	KeyEnvFile = "EMAILBISON_ENV_FILE"

	EnvFileName    = ".env"
	TuningFileName = "emailbison.yaml"

	defaultBaseURL = bison.DefaultURL
)

type Config struct {
	APIKey  string
	BaseURL string

	// EnvFile is the .env file consulted and written on first run.
	EnvFile string

	Tuning Tuning

	// Degraded is set when no API key could be resolved. Tools still run
	// but authenticated endpoints will answer 401.
	Degraded bool

	Logger *slog.Logger
}

type options struct {
	envFile    string
	tuningFile string

	lookup func(string) (string, bool)

	sources   []Source
	prompter  Prompter
	persister Persister

	interactive bool

	logger *slog.Logger
}

type Option func(*options)

func WithEnvFile(path string) Option {
	return func(o *options) {
		o.envFile = path
	}
}

func WithTuningFile(path string) Option {
	return func(o *options) {
		o.tuningFile = path
	}
}

func WithLookup(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

// WithSources replaces the default environment and .env file sources.
func WithSources(sources ...Source) Option {
	return func(o *options) {
		o.sources = sources
	}
}

func WithPrompter(p Prompter) Option {
	return func(o *options) {
		o.prompter = p
		o.interactive = p != nil
	}
}

func WithPersister(p Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load resolves the API key and base URL from the process environment, then
// the .env file next to the executable, then an interactive prompt when stdin
// is a terminal. A missing key is not an error.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	o := &options{
		lookup: os.LookupEnv,
		logger: slog.Default(),
	}

	o.interactive = term.IsTerminal(int(os.Stdin.Fd()))

	for _, opt := range opts {
		opt(o)
	}

	if o.envFile == "" {
		if v, ok := o.lookup(KeyEnvFile); ok && v != "" {
			o.envFile = v
		}
	}

	if o.envFile == "" {
		o.envFile = besideExecutable(EnvFileName)
	}

	file := &FileSource{Path: o.envFile}

	if o.sources == nil {
		o.sources = []Source{
			&EnvSource{Lookup: o.lookup},
			file,
		}
	}

	if o.persister == nil {
		o.persister = file
	}

	if o.prompter == nil && o.interactive {
		o.prompter = NewTerminalPrompter(os.Stdin, os.Stderr)
	}

	var values Values

	for _, s := range o.sources {
		v, err := s.Load(ctx)

		if err != nil {
			o.logger.Warn("skipping configuration source", "source", s, "error", err)
			continue
		}

		values = values.Merge(v)
	}

	if values.APIKey == "" && o.interactive && o.prompter != nil {
		v, err := o.prompter.Prompt(ctx, values)

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}

			o.logger.Warn("reading configuration from terminal failed", "error", err)
		} else {
			values = v.Merge(values)

			if err := o.persister.Persist(values); err != nil {
				o.logger.Warn("saving configuration failed", "path", o.envFile, "error", err)
			} else {
				o.logger.Info("configuration saved", "path", o.envFile)
			}
		}
	}

	cfg := &Config{
		APIKey:  values.APIKey,
		BaseURL: values.BaseURL,

		EnvFile: o.envFile,

		Logger: o.logger,
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.APIKey == "" {
		cfg.Degraded = true
		o.logger.Warn(KeyAPIKey+" is not configured, authenticated requests will fail", "env_file", o.envFile)
	}

	if o.tuningFile == "" {
		path := besideExecutable(TuningFileName)

		if _, err := os.Stat(path); err == nil {
			o.tuningFile = path
		}
	}

	if o.tuningFile != "" {
		tuning, err := parseTuning(o.tuningFile)

		if err != nil {
			o.logger.Warn("ignoring tuning file", "path", o.tuningFile, "error", err)
		} else {
			cfg.Tuning = *tuning
		}
	}

	return cfg, nil
}

func besideExecutable(name string) string {
	exe, err := os.Executable()

	if err != nil {
		return name
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), name)
}
