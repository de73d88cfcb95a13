package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/matsen/abook/internal/logger"
	"github.com/matsen/abook/internal/storage"
)

// Storage backends.
const (
	BackendJSONL  = storage.BackendJSONL
	BackendSQLite = storage.BackendSQLite
)

// Default book file names, relative to the working directory.
const (
	DefaultJSONLBook  = "addressbook.jsonl"
	DefaultSQLiteBook = "addressbook.db"
)

// Environment variables that override the global config file.
const (
	EnvBook     = "ABOOK_BOOK"
	EnvBackend  = "ABOOK_BACKEND"
	EnvLogLevel = "ABOOK_LOG_LEVEL"
)

// ValidBackends lists the supported storage backends.
var ValidBackends = []string{BackendJSONL, BackendSQLite}

// ErrUnknownBackend is returned for a backend not in ValidBackends.
var ErrUnknownBackend = errors.New("unknown backend")

// ErrUnknownLogLevel is returned for a log level logger.ParseLevel rejects.
var ErrUnknownLogLevel = errors.New("unknown log level")

// Settings are the effective options for one run.
type Settings struct {
	BookPath string
	Backend  string
	Log      logger.Options
}

// Overrides holds values set on the command line. Empty fields are unset.
type Overrides struct {
	BookPath  string
	Backend   string
	LogLevel  string
	LogFormat string
	LogFile   string
}

// LoadEnv loads a .env file from the working directory if there is one.
func LoadEnv() {
	_ = godotenv.Load()
}

// Resolve merges the global config file, the environment and overrides,
// later sources winning, and fills in defaults.
func Resolve(o Overrides) (*Settings, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		BookPath: cfg.BookPath,
		Backend:  cfg.Backend,
		Log: logger.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			File:   cfg.LogFile,
		},
	}

	if v := os.Getenv(EnvBook); v != "" {
		s.BookPath = ExpandPath(v)
	}
	if v := os.Getenv(EnvBackend); v != "" {
		s.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.Log.Level = v
	}

	if o.BookPath != "" {
		s.BookPath = ExpandPath(o.BookPath)
	}
	if o.Backend != "" {
		s.Backend = o.Backend
	}
	if o.LogLevel != "" {
		s.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		s.Log.Format = o.LogFormat
	}
	if o.LogFile != "" {
		s.Log.File = o.LogFile
	}

	if s.Backend == "" {
		s.Backend = BackendJSONL
	}
	if err := ValidateBackend(s.Backend); err != nil {
		return nil, err
	}
	if err := ValidateLogLevel(s.Log.Level); err != nil {
		return nil, err
	}
	if s.BookPath == "" {
		s.BookPath = DefaultBookPath(s.Backend)
	}

	return s, nil
}

// DefaultBookPath returns the book file used when none is configured.
func DefaultBookPath(backend string) string {
	if backend == BackendSQLite {
		return DefaultSQLiteBook
	}
	return DefaultJSONLBook
}

// ValidateBackend checks that backend is one of ValidBackends.
func ValidateBackend(backend string) error {
	if slices.Contains(ValidBackends, backend) {
		return nil
	}
	return fmt.Errorf("%w: %s (valid: %v)", ErrUnknownBackend, backend, ValidBackends)
}

// ValidateLogLevel checks that level is empty or a known level name.
func ValidateLogLevel(level string) error {
	if _, ok := logger.ParseLevel(level); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLogLevel, level)
	}
	return nil
}
