package main

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"kinosync/internal/config"
	"kinosync/internal/library"
	"kinosync/internal/logging"
	"kinosync/internal/resolve"
	"kinosync/internal/services/kinopoisk"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stderr",
			filepath.Join(cfg.Paths.LogDir, "kinosync.log"),
		},
	})
}

func (c *commandContext) openStore() (*library.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return library.Open(cfg.Paths.Database)
}

// newClient builds a catalog client recording notable events into the
// library activity log.
func (c *commandContext) newClient(store *library.Store, logger *slog.Logger) (*kinopoisk.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return kinopoisk.New(kinopoisk.Config{
		Token:   cfg.Kinopoisk.Token,
		BaseURL: cfg.Kinopoisk.BaseURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.Kinopoisk.RequestTimeout) * time.Second,
		},
		Logger:   logger,
		Activity: store,
	})
}

// withResolver wires store, client and resolver together for one
// command invocation.
func (c *commandContext) withResolver(fn func(*resolve.Service, *library.Store) error) error {
	logger, err := c.logger()
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := c.newClient(store, logger)
	if err != nil {
		return err
	}
	return fn(resolve.New(client, logger), store)
}
