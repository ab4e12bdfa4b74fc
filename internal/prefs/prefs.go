// Package prefs persists the customer table's column-visibility preference.
// The mapping is stored as JSON in ~/.config/kartei/columns_v1.json and is
// read once at startup and written on every change. Missing or corrupt
// storage is never fatal: it simply means every column is visible.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultColumnsPath = "~/.config/kartei/columns_v1.json"

// DefaultPath returns the default preference file path.
func DefaultPath() string {
	return defaultColumnsPath
}

// LoadColumns reads the persisted column mapping. Any failure degrades to an
// empty mapping, which callers treat as "all columns visible".
func LoadColumns(path string) map[string]bool {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil
	}

	var cols map[string]bool
	if err := json.Unmarshal(raw, &cols); err != nil {
		return nil // corrupt storage falls back to the safe default
	}
	return cols
}

// SaveColumns writes the column mapping, creating directories as needed.
func SaveColumns(path string, cols map[string]bool) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := json.Marshal(cols)
	if err != nil {
		return fmt.Errorf("marshal columns: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write columns: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultColumnsPath)
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
