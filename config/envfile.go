package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

func readEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	env, err := parseEnv(data)

	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return env, nil
}

// parseEnv reads KEY=VALUE lines. Blank lines and # comments are skipped, an
// optional "export " prefix is accepted and values may be single or double
// quoted.
func parseEnv(data []byte) (map[string]string, error) {
	env := map[string]string{}

	scanner := bufio.NewScanner(bytes.NewReader(data))

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, val, ok := strings.Cut(line, "=")

		if !ok {
			return nil, fmt.Errorf("line %d: missing '='", n)
		}

		key = strings.TrimSpace(key)

		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", n)
		}

		val, err := unquote(strings.TrimSpace(val))

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}

		env[key] = val
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return env, nil
}

func unquote(val string) (string, error) {
	if len(val) < 2 {
		return val, nil
	}

	switch {
	case val[0] == '"' && val[len(val)-1] == '"':
		return strconv.Unquote(val)

	case val[0] == '\'' && val[len(val)-1] == '\'':
		return val[1 : len(val)-1], nil
	}

	return val, nil
}

// formatEnv writes entries sorted by key, quoting values that would not
// survive parseEnv unchanged.
func formatEnv(env map[string]string) []byte {
	var buf bytes.Buffer

	keys := make([]string, 0, len(env))

	for k := range env {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString("=")
		buf.WriteString(quote(env[k]))
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

func quote(val string) string {
	if val == "" {
		return val
	}

	if strings.TrimSpace(val) != val || strings.ContainsAny(val, "\"'#\\\n\r\t") {
		return strconv.Quote(val)
	}

	return val
}
