// Package token persists the storefront bearer token between runs.
// The token is stored in ~/.config/vitrine/session.toml.
package token

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultTokenPath = "~/.config/vitrine/session.toml"

type payload struct {
	Token string `toml:"token"`
}

// DefaultPath returns the default token file path.
func DefaultPath() string {
	return defaultTokenPath
}

// Load reads the persisted token from the given path. A missing or unreadable
// file yields an empty token; startup proceeds unauthenticated.
func Load(path string) string {
	resolved, err := resolvePath(path)
	if err != nil {
		return ""
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return ""
	}

	var p payload
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return ""
	}
	return strings.TrimSpace(p.Token)
}

// Save writes the token to the given path, creating directories as needed.
// The file is written owner-only since it holds a credential.
func Save(path, tok string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	bytes, err := toml.Marshal(payload{Token: tok})
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. A missing file is not an error.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultTokenPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
