package installer

import (
	"os"
	"path/filepath"
)

// CurrentEntry describes how the running binary should be launched. The
// API key is left to the .env file next to the binary unless env is given.
func CurrentEntry(args []string, env map[string]string) (Entry, error) {
	exe, err := os.Executable()

	if err != nil {
		return Entry{}, err
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	exe, err = filepath.Abs(exe)

	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Command: exe,
		Args:    args,
		Env:     env,
	}, nil
}
