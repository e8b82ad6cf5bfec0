package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Values are the settings a configuration source can provide.
type Values struct {
	APIKey  string
	BaseURL string
}

// Merge fills the empty fields of v from other.
func (v Values) Merge(other Values) Values {
	if v.APIKey == "" {
		v.APIKey = other.APIKey
	}

	if v.BaseURL == "" {
		v.BaseURL = other.BaseURL
	}

	return v
}

type Source interface {
	Load(ctx context.Context) (Values, error)
}

type Prompter interface {
	Prompt(ctx context.Context, defaults Values) (Values, error)
}

type Persister interface {
	Persist(values Values) error
}

type EnvSource struct {
	Lookup func(string) (string, bool)
}

func (s *EnvSource) String() string {
	return "environment"
}

func (s *EnvSource) Load(ctx context.Context) (Values, error) {
	lookup := s.Lookup

	if lookup == nil {
		lookup = os.LookupEnv
	}

	var v Values

	if val, ok := lookup(KeyAPIKey); ok {
		v.APIKey = strings.TrimSpace(val)
	}

	if val, ok := lookup(KeyBaseURL); ok {
		v.BaseURL = strings.TrimSpace(val)
	}

	return v, nil
}

// FileSource reads and writes a .env file. A missing file yields no values.
type FileSource struct {
	Path string
}

func (s *FileSource) String() string {
	return s.Path
}

func (s *FileSource) Load(ctx context.Context) (Values, error) {
	env, err := readEnvFile(s.Path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Values{}, nil
		}

		return Values{}, err
	}

	return Values{
		APIKey:  env[KeyAPIKey],
		BaseURL: env[KeyBaseURL],
	}, nil
}

// Persist stores values in the file, keeping unrelated entries. The file is
// replaced atomically and readable by the owner only.
func (s *FileSource) Persist(values Values) error {
	env, err := readEnvFile(s.Path)

	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		env = map[string]string{}
	}

	if values.APIKey != "" {
		env[KeyAPIKey] = values.APIKey
	}

	if values.BaseURL != "" {
		env[KeyBaseURL] = values.BaseURL
	}

	dir := filepath.Dir(s.Path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".env-*")

	if err != nil {
		return err
	}

	defer os.Remove(f.Name())

	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return err
	}

	if _, err := f.Write(formatEnv(env)); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(f.Name(), s.Path); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}

	return nil
}
