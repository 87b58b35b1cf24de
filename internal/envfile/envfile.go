// Package envfile loads environment variables from dotenv-style files.
// Variables already set in the environment take precedence, so an exported
// SPECDIFF_REPORT always beats the same key read from a file.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a dotenv file and sets every variable that is not already
// present in the environment. A missing file is not an error; only read
// failures are reported.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)

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
	return nil
}

// parseLine splits a KEY=VALUE line, tolerating an optional "export "
// prefix and single or double quotes around the value.
func parseLine(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:eq])
	if key == "" {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(key, "export "))

	value = strings.TrimSpace(line[eq+1:])
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}
