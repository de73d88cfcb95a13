// Package main provides the abook CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/abook/internal/addressbook"
	"github.com/matsen/abook/internal/config"
	"github.com/matsen/abook/internal/logger"
	"github.com/matsen/abook/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// jsonOutput switches one-shot commands to JSON output
var jsonOutput bool

// flagOverrides collects the settings given on the command line
var flagOverrides config.Overrides

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if !exitErr.silent {
				fmt.Fprintf(os.Stderr, "error: %s\n", exitErr.err)
			}
			os.Exit(exitErr.code)
		}
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "abook",
	Short: "Contact book with phones and birthdays",
	Long: `abook keeps names, phone numbers and birthdays between runs.

Run without a command to start the interactive assistant, or use one of the
commands below for a single operation. Phones use the +380XXXXXXXXX format
and birthdays DD.MM.YYYY.

The book is stored in addressbook.jsonl in the current directory unless
--book, ABOOK_BOOK or book_path in ~/.config/abook/config.yml says otherwise.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagOverrides.BookPath, "book", "", "Address book file")
	pf.StringVar(&flagOverrides.Backend, "backend", "", "Storage backend (jsonl, sqlite)")
	pf.BoolVar(&jsonOutput, "json", false, "Use JSON output for single commands")
	pf.StringVar(&flagOverrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagOverrides.LogFormat, "log-format", "", "Log format (text, json)")
	pf.StringVar(&flagOverrides.LogFile, "log-file", "", "Append logs to this file instead of stderr")
	rootCmd.Version = Version
}

// app holds what one invocation needs: settings, logger, and the loaded book.
type app struct {
	settings *config.Settings
	log      *slog.Logger
	closeLog func() error
	store    storage.Store
	book     *addressbook.AddressBook
}

// openApp resolves settings and loads the book.
func openApp() (*app, error) {
	config.LoadEnv()

	settings, err := config.Resolve(flagOverrides)
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: fmt.Errorf("loading config: %w", err)}
	}
	log, closeLog := logger.New(&settings.Log)

	store, err := storage.Open(settings.Backend, settings.BookPath)
	if err != nil {
		closeLog()
		return nil, &exitError{code: ExitConfigError, err: err}
	}

	book, err := store.Load()
	if err != nil {
		closeLog()
		return nil, &exitError{code: ExitError, err: fmt.Errorf("loading address book: %w", err)}
	}
	log.Debug("loaded address book", "path", store.Path(), "backend", settings.Backend, "records", book.Len())

	return &app{settings: settings, log: log, closeLog: closeLog, store: store, book: book}, nil
}

// close releases the log file, if any.
func (a *app) close() {
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", err)
	}
}

// save writes the book back to its store.
func (a *app) save() error {
	if err := a.store.Save(a.book); err != nil {
		a.log.Error("saving address book failed", "path", a.store.Path(), "err", err)
		return &exitError{code: ExitError, err: fmt.Errorf("saving address book: %w", err)}
	}
	a.log.Debug("saved address book", "path", a.store.Path(), "records", a.book.Len())
	return nil
}
