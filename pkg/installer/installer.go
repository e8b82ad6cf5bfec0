package installer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	DefaultServerName = "email-bison"

	configDir  = "Claude"
	configFile = "claude_desktop_config.json"
)

var ErrConfigCorrupt = errors.New("desktop configuration is not valid JSON")

// Entry is the launch description of one MCP server.
type Entry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

type Result struct {
	Path   string
	Backup string

	Created  bool
	Replaced bool
}

// DefaultPath returns the desktop assistant configuration file inside the
// user configuration directory of the platform.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()

	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configDir, configFile), nil
}

// Install merges entry into mcpServers[name] of the configuration at path.
// Every other key is preserved. An existing file is copied to path+".bak"
// first and replaced atomically. Unparseable files are left untouched.
func Install(path, name string, entry Entry) (*Result, error) {
	if name == "" {
		name = DefaultServerName
	}

	if entry.Args == nil {
		entry.Args = []string{}
	}

	result := &Result{
		Path: path,
	}

	data, err := os.ReadFile(path)

	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		result.Created = true
	}

	root := map[string]json.RawMessage{}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, path, err)
		}

		if root == nil {
			return nil, fmt.Errorf("%w: %s: top level must be an object", ErrConfigCorrupt, path)
		}
	}

	servers := map[string]json.RawMessage{}

	if raw, ok := root["mcpServers"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, fmt.Errorf("%w: %s: mcpServers must be an object", ErrConfigCorrupt, path)
		}

		if servers == nil {
			servers = map[string]json.RawMessage{}
		}
	}

	_, result.Replaced = servers[name]

	value, err := json.Marshal(entry)

	if err != nil {
		return nil, err
	}

	servers[name] = value

	if root["mcpServers"], err = json.Marshal(servers); err != nil {
		return nil, err
	}

	output, err := json.MarshalIndent(root, "", "  ")

	if err != nil {
		return nil, err
	}

	output = append(output, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	if !result.Created {
		result.Backup = path + ".bak"

		if err := os.WriteFile(result.Backup, data, 0o600); err != nil {
			return nil, fmt.Errorf("backup %s: %w", path, err)
		}
	}

	if err := writeFile(path, output); err != nil {
		return nil, err
	}

	return result, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func writeFile(path string, data []byte) error {
	mode := fs.FileMode(0o600)

	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")

	if err != nil {
		return err
	}

	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
