// Package config loads the kartei configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures what kartei needs to reach the customer API.
type Config struct {
	APIBaseURL  string
	Token       string
	ColumnsPath string
}

const defaultConfigPath = "~/.config/kartei/config.toml"

// Load locates and parses the config file. The API base URL may come from the
// KARTEI_API_BASE_URL environment variable instead; the token likewise from
// KARTEI_TOKEN, so credentials can stay out of the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIBaseURL  string `toml:"api_base_url"`
			Token       string `toml:"token"`
			ColumnsPath string `toml:"columns_path"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.APIBaseURL = strings.TrimSpace(raw.APIBaseURL)
		cfg.Token = strings.TrimSpace(raw.Token)
		cfg.ColumnsPath = strings.TrimSpace(raw.ColumnsPath)
	}

	if env := strings.TrimSpace(os.Getenv("KARTEI_API_BASE_URL")); env != "" {
		cfg.APIBaseURL = env
	}
	if env := strings.TrimSpace(os.Getenv("KARTEI_TOKEN")); env != "" {
		cfg.Token = env
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("api_base_url not set (config %s or KARTEI_API_BASE_URL)", resolved)
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
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
