package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure, storage error)
	ExitConfigError = 2 // Configuration error (bad config file, unknown backend or level)
	ExitDataError   = 3 // Data error (validation failure, unknown contact, missing arguments)
)

// exitError carries the exit code for an error returned from a command.
type exitError struct {
	code   int
	err    error
	silent bool // already reported on stdout
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
