// Package credential resolves API keys from the environment with a
// per-user dotfile fallback. The dotfile holds newline-separated
// KEY=VALUE entries; lines starting with # are comments.
package credential

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DotfileName is the per-user credential file, relative to the home directory.
const DotfileName = ".gitmuse_credentials"

// NotFoundError indicates that no credential could be resolved for a key.
type NotFoundError struct {
	EnvVar  string
	Dotfile string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("credential not found: set the %s environment variable or add a %s entry to %s",
		e.EnvVar, e.EnvVar, e.Dotfile)
}

// DefaultDotfilePath returns the path of the per-user credential file.
func DefaultDotfilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DotfileName), nil
}

// Resolve returns the credential named by envVar, preferring the environment
// over the dotfile. A missing dotfile is not an error; a missing credential is.
func Resolve(envVar, dotfilePath string) (string, error) {
	if value := os.Getenv(envVar); value != "" {
		return value, nil
	}

	value, found, err := lookupDotfile(dotfilePath, envVar)
	if err != nil {
		return "", err
	}
	if found {
		return value, nil
	}

	return "", &NotFoundError{EnvVar: envVar, Dotfile: dotfilePath}
}

// lookupDotfile scans the dotfile for a KEY=VALUE entry matching key.
// Blank lines and comment lines are skipped; values are split on the
// first '=' only, so values containing '=' stay intact.
func lookupDotfile(path, key string) (string, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read credential file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == key {
			return strings.TrimSpace(value), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("failed to read credential file: %w", err)
	}

	return "", false, nil
}
