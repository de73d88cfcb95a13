package main

import (
	"github.com/matsen/abook/internal/assistant"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive assistant",
	Long: `Start the interactive assistant. This is also what abook does with no command.

Commands:
  hello                              Greeting
  add <name> <phone>                 Add a contact or another phone
  change <name> <old> <new>          Replace a phone
  phone <name>                       Show a contact's phones
  all                                Show all contacts
  add-birthday <name> <DD.MM.YYYY>   Set a birthday
  show-birthday <name>               Show a birthday
  birthdays                          Birthdays in the coming week
  close, exit                        Save and quit

The book is saved when the session ends.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	sess, err := openApp()
	if err != nil {
		return err
	}
	defer sess.close()

	a := assistant.New(sess.book, sess.log)
	changed, sessionErr := a.Session(cmd.InOrStdin(), cmd.OutOrStdout())
	sess.log.Debug("session ended", "changed", changed)

	// Save even if reading input failed.
	if err := sess.save(); err != nil {
		return err
	}
	if sessionErr != nil {
		return &exitError{code: ExitError, err: sessionErr}
	}
	return nil
}
