// Package assistant is the command layer between user input and the address book.
//
// Every command returns a Result. Render is the only place a Result becomes
// user-visible text, so handlers never format errors themselves.
package assistant

import (
	"errors"
	"fmt"

	"github.com/matsen/abook/internal/addressbook"
)

// Command-layer errors.
var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrMissingArguments = errors.New("missing arguments")
	ErrInvalidCommand   = errors.New("invalid command")
	ErrUnexpected       = errors.New("unexpected failure")
)

// UsageError reports a command called with too few arguments.
type UsageError struct {
	Verb string
	Hint string // shown to the user
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Verb, e.Hint)
}

func (e *UsageError) Is(target error) bool {
	return target == ErrMissingArguments
}

// PhoneNotFoundError reports a change of a phone the contact does not have.
type PhoneNotFoundError struct {
	Name  string
	Phone string
}

func (e *PhoneNotFoundError) Error() string {
	return fmt.Sprintf("phone %s not found for %s", e.Phone, e.Name)
}

func (e *PhoneNotFoundError) Unwrap() error {
	return addressbook.ErrPhoneNotFound
}

// Result is the outcome of one command.
type Result struct {
	Message string // success text
	Data    any    // structured payload for JSON output, may be nil
	Err     error
	Changed bool // the book was modified
	Quit    bool // the session should end
}

func success(msg string, data any) Result {
	return Result{Message: msg, Data: data}
}

func failure(err error) Result {
	return Result{Err: err}
}

// Render returns the user-visible text for r.
func Render(r Result) string {
	if r.Err != nil {
		return ErrorMessage(r.Err)
	}
	return r.Message
}

// ErrorMessage maps an error to the text shown to the user.
func ErrorMessage(err error) string {
	var usage *UsageError
	var phone *PhoneNotFoundError
	switch {
	case errors.As(err, &usage):
		return usage.Hint
	case errors.As(err, &phone):
		return fmt.Sprintf("Phone %s not found for %s.", phone.Phone, phone.Name)
	case errors.Is(err, ErrContactNotFound):
		return "Contact not found."
	case errors.Is(err, ErrInvalidCommand):
		return "Invalid command."
	case errors.Is(err, addressbook.ErrInvalidName):
		return "Name must be a non-empty string"
	case errors.Is(err, addressbook.ErrInvalidPhone):
		return "Invalid phone number format. Use +380XXXXXXXXX"
	case errors.Is(err, addressbook.ErrInvalidDate):
		return "Invalid date format. Use DD.MM.YYYY"
	default:
		return "An error occurred: " + err.Error()
	}
}

// IsUserError reports whether err comes from bad input rather than a failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, ErrMissingArguments) ||
		errors.Is(err, ErrInvalidCommand) ||
		errors.Is(err, addressbook.ErrPhoneNotFound) ||
		errors.Is(err, addressbook.ErrInvalidName) ||
		errors.Is(err, addressbook.ErrInvalidPhone) ||
		errors.Is(err, addressbook.ErrInvalidDate)
}
