package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. An empty token is legal:
// it means "unconfigured" and disables catalog access rather than
// failing startup.
func (c *Config) Validate() error {
	if err := c.validateKinopoisk(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateKinopoisk() error {
	parsed, err := url.Parse(c.Kinopoisk.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("kinopoisk.base_url is not a valid URL: %q", c.Kinopoisk.BaseURL)
	}
	if c.Kinopoisk.RequestTimeout <= 0 {
		return errors.New("kinopoisk.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.Database == "" {
		return errors.New("paths.database must be set")
	}
	if c.Paths.LockFile == "" {
		return errors.New("paths.lock_file must be set")
	}
	return nil
}
