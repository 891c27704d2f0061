package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kinosync/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}
			if err := config.WriteSample(target); err != nil {
				return err
			}
			cmd.Printf("Sample configuration written to %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "output", "o", "", "Target path for the sample config")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := [][]string{
				{"kinopoisk.token", maskToken(cfg.Kinopoisk.Token)},
				{"kinopoisk.base_url", cfg.Kinopoisk.BaseURL},
				{"kinopoisk.request_timeout", fmt.Sprintf("%ds", cfg.Kinopoisk.RequestTimeout)},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.database", cfg.Paths.Database},
				{"paths.lock_file", cfg.Paths.LockFile},
				{"collections.top250_movies", cfg.Collections.Top250Movies},
				{"collections.top250_series", cfg.Collections.Top250Series},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			cmd.Println(renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate a configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolvedPath, exists, err := config.Load(strings.TrimSpace(configPath))
			if err != nil {
				return err
			}
			if !exists {
				cmd.Printf("No config file at %s; defaults are valid\n", resolvedPath)
			} else {
				cmd.Printf("Configuration at %s is valid\n", resolvedPath)
			}
			if !cfg.TokenConfigured() {
				cmd.Println("Note: no API token configured; catalog lookups will return no metadata")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config-file", "f", "", "Configuration file to validate")
	return cmd
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
