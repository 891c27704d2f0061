package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kinosync/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("KINOPOISK_TOKEN", "")
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected the file to be reported missing")
	}
	if cfg.Kinopoisk.BaseURL != "https://kinopoiskapiunofficial.tech" {
		t.Fatalf("unexpected base url: %q", cfg.Kinopoisk.BaseURL)
	}
	if cfg.Kinopoisk.RequestTimeout != 180 {
		t.Fatalf("unexpected timeout: %d", cfg.Kinopoisk.RequestTimeout)
	}
	if cfg.TokenConfigured() {
		t.Fatal("expected no token by default")
	}
	if cfg.Collections.Top250Movies == "" || cfg.Collections.Top250Series == "" {
		t.Fatalf("expected default collection names, got %#v", cfg.Collections)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[kinopoisk]
token = "  secret-token  "
base_url = "https://example.test/"

[paths]
database = "` + filepath.Join(dir, "db", "library.db") + `"
lock_file = "` + filepath.Join(dir, "sync.lock") + `"
log_dir = "` + dir + `"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Kinopoisk.Token != "secret-token" {
		t.Fatalf("expected trimmed token, got %q", cfg.Kinopoisk.Token)
	}
	if cfg.Kinopoisk.BaseURL != "https://example.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Kinopoisk.BaseURL)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging settings, got %#v", cfg.Logging)
	}
}

func TestLoadEnvTokenOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[kinopoisk]\ntoken = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KINOPOISK_TOKEN", "from-env")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Kinopoisk.Token != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.Kinopoisk.Token)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad base url", func(c *config.Config) { c.Kinopoisk.BaseURL = "not a url" }, "base_url"},
		{"zero timeout", func(c *config.Config) { c.Kinopoisk.RequestTimeout = 0 }, "request_timeout"},
		{"missing database", func(c *config.Config) { c.Paths.Database = "" }, "database"},
		{"missing lock file", func(c *config.Config) { c.Paths.LockFile = "" }, "lock_file"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.Database = "/tmp/library.db"
			cfg.Paths.LockFile = "/tmp/sync.lock"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateAcceptsEmptyToken(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Database = "/tmp/library.db"
	cfg.Paths.LockFile = "/tmp/sync.lock"
	cfg.Kinopoisk.Token = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected an unconfigured token to validate, got %v", err)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	// The sample must itself load cleanly.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := config.ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("unexpected expansion: %q", got)
	}

	got, err = config.ExpandPath("")
	if err != nil || got != "" {
		t.Fatalf("expected empty passthrough, got %q err=%v", got, err)
	}
}
