// Package config handles loading Vitrine's client configuration.
//
// Configuration resolves in three layers: hardcoded defaults, the TOML file
// at ~/.config/vitrine/config.toml, then VITRINE_* environment variables
// (a .env file in the working directory is honored when present). A missing
// config file is not an error; Vitrine works out of the box against a local
// backend.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Vitrine needs to reach and observe the backend.
type Config struct {
	APIURL    string
	LogDir    string
	LogLevel  string
	LogFormat string
}

const (
	defaultConfigPath = "~/.config/vitrine/config.toml"
	defaultLogDir     = "~/.local/share/vitrine/logs"
	defaultAPIURL     = "http://localhost:3000"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
)

// Load locates and parses the config, applying env overrides last.
func Load(path string) (Config, error) {
	// A .env next to the binary mirrors the backend's own configuration
	// style; absence is the normal case.
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:    defaultAPIURL,
		LogDir:    defaultLogDir,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer func() { _ = file.Close() }()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIURL    string `toml:"api_url"`
			LogDir    string `toml:"log_dir"`
			LogLevel  string `toml:"log_level"`
			LogFormat string `toml:"log_format"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		applyIfSet(&cfg.APIURL, raw.APIURL)
		applyIfSet(&cfg.LogDir, raw.LogDir)
		applyIfSet(&cfg.LogLevel, raw.LogLevel)
		applyIfSet(&cfg.LogFormat, raw.LogFormat)
	}

	applyIfSet(&cfg.APIURL, os.Getenv("VITRINE_API_URL"))
	applyIfSet(&cfg.LogDir, os.Getenv("VITRINE_LOG_DIR"))
	applyIfSet(&cfg.LogLevel, os.Getenv("VITRINE_LOG_LEVEL"))
	applyIfSet(&cfg.LogFormat, os.Getenv("VITRINE_LOG_FORMAT"))

	cfg.LogDir = mustExpand(cfg.LogDir)

	return cfg, nil
}

// LogPath returns the path of the client log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/vitrine.log")
	}
	return filepath.Join(c.LogDir, "vitrine.log")
}

func applyIfSet(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
