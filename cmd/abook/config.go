package main

import (
	"fmt"
	"strings"

	"github.com/matsen/abook/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values in the global config file (~/.config/abook/config.yml).

Usage:
  abook config                       # Show all config
  abook config backend               # Get specific value
  abook config backend sqlite        # Set value
  abook config book ~/contacts.db    # Set the address book file

Keys:
  book        Address book file (book_path in the file; also accepted here)
  backend     Storage backend (jsonl, sqlite)
  log-level   Log level (debug, info, warn, error)
  log-format  Log format (text, json)
  log-file    Append logs to this file instead of stderr

ABOOK_BOOK, ABOOK_BACKEND and ABOOK_LOG_LEVEL (also read from .env)
override the file; command-line flags override both.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	Path      string `json:"path"`
	Book      string `json:"book,omitempty"`
	Backend   string `json:"backend,omitempty"`
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
	LogFile   string `json:"log_file,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// configFields maps each key to its field in the global config.
func configFields(cfg *config.GlobalConfig) map[string]*string {
	return map[string]*string{
		"book":       &cfg.BookPath,
		"backend":    &cfg.Backend,
		"log-level":  &cfg.LogLevel,
		"log-format": &cfg.LogFormat,
		"log-file":   &cfg.LogFile,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return &exitError{code: ExitConfigError, err: fmt.Errorf("loading config: %w", err)}
	}

	// No args: show all config
	if len(args) == 0 {
		if jsonOutput {
			return outputJSON(out, ConfigResponse{
				Path:      config.GlobalConfigPath(),
				Book:      cfg.BookPath,
				Backend:   cfg.Backend,
				LogLevel:  cfg.LogLevel,
				LogFormat: cfg.LogFormat,
				LogFile:   cfg.LogFile,
			})
		}
		fmt.Fprintf(out, "book:       %s\n", cfg.BookPath)
		fmt.Fprintf(out, "backend:    %s\n", cfg.Backend)
		fmt.Fprintf(out, "log-level:  %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log-format: %s\n", cfg.LogFormat)
		fmt.Fprintf(out, "log-file:   %s\n", cfg.LogFile)
		return nil
	}

	key := normalizeKey(args[0])
	field, known := configFields(cfg)[key]
	if !known {
		return &exitError{code: ExitError, err: fmt.Errorf("unknown configuration key: %s", args[0])}
	}

	// One arg: get specific value
	if len(args) == 1 {
		if jsonOutput {
			return outputJSON(out, map[string]string{strings.ReplaceAll(key, "-", "_"): *field})
		}
		fmt.Fprintln(out, *field)
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := validateConfigValue(key, value); err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	if key == "book" {
		value = config.ExpandPath(value)
	}
	*field = value

	if err := cfg.Save(); err != nil {
		return &exitError{code: ExitError, err: fmt.Errorf("saving config: %w", err)}
	}

	if jsonOutput {
		return outputJSON(out, UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	fmt.Fprintf(out, "Updated %s to %s\n", key, value)
	return nil
}

func validateConfigValue(key, value string) error {
	switch key {
	case "backend":
		return config.ValidateBackend(value)
	case "log-level":
		return config.ValidateLogLevel(value)
	case "log-format":
		if value != "text" && value != "json" {
			return fmt.Errorf("invalid log format: %s (valid: text, json)", value)
		}
	}
	return nil
}

// normalizeKey converts key formats (log-level, log_level, LOG_LEVEL) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	if key == "book-path" {
		return "book"
	}
	return key
}
