package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/matsen/abook/internal/assistant"
	"github.com/spf13/cobra"
)

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResultResponse is the JSON response for a successful command.
type ResultResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// writeResult prints res in the selected format and turns a failed result
// into an exitError.
func writeResult(cmd *cobra.Command, res assistant.Result) error {
	out := cmd.OutOrStdout()
	text := assistant.Render(res)

	if res.Err != nil {
		code := ExitError
		if assistant.IsUserError(res.Err) {
			code = ExitDataError
		}
		if jsonOutput {
			outputJSON(out, ErrorResponse{Error: text})
			return &exitError{code: code, err: res.Err, silent: true}
		}
		return &exitError{code: code, err: errors.New(text)}
	}

	if jsonOutput {
		return outputJSON(out, ResultResponse{Message: text, Data: res.Data})
	}
	_, err := fmt.Fprintln(out, text)
	return err
}
