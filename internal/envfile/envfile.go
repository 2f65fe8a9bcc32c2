// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads a .env file and sets any variables not already in the
// environment. A missing file is not an error; only read failures are.
func Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			continue
		}

		// Only set if not already in the environment
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	return nil
}

// parseLine extracts KEY=VALUE, tolerating an "export " prefix and
// single or double quotes around the value.
func parseLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
