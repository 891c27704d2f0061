package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.Database, err = ExpandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if c.Paths.LockFile, err = ExpandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}

	c.Kinopoisk.Token = strings.TrimSpace(c.Kinopoisk.Token)
	c.Kinopoisk.BaseURL = strings.TrimRight(strings.TrimSpace(c.Kinopoisk.BaseURL), "/")
	if c.Kinopoisk.BaseURL == "" {
		c.Kinopoisk.BaseURL = defaultBaseURL
	}
	if c.Kinopoisk.RequestTimeout <= 0 {
		c.Kinopoisk.RequestTimeout = defaultRequestTimeout
	}

	if strings.TrimSpace(c.Collections.Top250Movies) == "" {
		c.Collections.Top250Movies = defaultTop250MoviesName
	}
	if strings.TrimSpace(c.Collections.Top250Series) == "" {
		c.Collections.Top250Series = defaultTop250SeriesName
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// ExpandPath expands a leading ~ and resolves the path to absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
