// Package logger builds the slog logger used by the abook CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultLevel keeps the interactive session quiet unless something goes wrong.
const DefaultLevel = "warn"

// Options configures New. Zero values select stderr, text and DefaultLevel.
type Options struct {
	Level  string // debug, info, warn or error
	File   string // "" or "-" for stderr, os.DevNull to discard, else appended to
	Format string // text or json
}

// ParseLevel maps a level name to a slog level. The empty string selects DefaultLevel.
func ParseLevel(option string) (slog.Level, bool) {
	switch strings.ToLower(option) {
	case "":
		return ParseLevel(DefaultLevel)
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// New returns a logger for options and a function that closes its log file.
// Invalid options fall back to defaults and the fallback logger records a
// warning about them.
func New(options *Options) (*slog.Logger, func() error) {
	return newLogger(options, os.Stderr)
}

func noClose() error { return nil }

func newLogger(options *Options, stderr io.Writer) (*slog.Logger, func() error) {
	level, ok := ParseLevel(options.Level)
	if !ok {
		bad := options.Level
		options.Level = ""
		logger, closeFn := newLogger(options, stderr)
		logger.Warn("could not parse logger level", "level", bad)
		return logger, closeFn
	}
	opts := slog.HandlerOptions{Level: level}

	format := strings.ToLower(options.Format)
	if format != "" && format != "text" && format != "json" {
		bad := options.Format
		options.Format = "text"
		logger, closeFn := newLogger(options, stderr)
		logger.Warn("could not parse logger format", "format", bad)
		return logger, closeFn
	}

	var output io.Writer
	closeFn := noClose
	switch options.File {
	case "", "-":
		output = stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler), noClose
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			logger, closeFn := newLogger(options, stderr)
			logger.Warn("could not open logger file", "err", err)
			return logger, closeFn
		}
		output = f
		closeFn = f.Close
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(output, &opts)), closeFn
	}
	return slog.New(slog.NewTextHandler(output, &opts)), closeFn
}
