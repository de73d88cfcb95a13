package main

import (
	"github.com/matsen/abook/internal/assistant"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addBirthdayCmd)
	rootCmd.AddCommand(showBirthdayCmd)
	rootCmd.AddCommand(birthdaysCmd)
}

var addBirthdayCmd = &cobra.Command{
	Use:   "add-birthday <name> <DD.MM.YYYY>",
	Short: "Set a contact's birthday",
	Long: `Set a contact's birthday, replacing any previous one.

Example:
  abook add-birthday Alice 15.06.1990`,
	Args: cobra.ArbitraryArgs,
	RunE: runVerb(assistant.VerbAddBirthday),
}

var showBirthdayCmd = &cobra.Command{
	Use:   "show-birthday <name>",
	Short: "Show a contact's birthday",
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(assistant.VerbShowBirthday),
}

var birthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "List contacts with a birthday in the coming week",
	Long: `List contacts whose birthday falls in the coming week.

A birthday matches if it is later this month (on or after today), or in the
month seven days from now on or before that day. Years are ignored.`,
	Args: cobra.ArbitraryArgs,
	RunE: runVerb(assistant.VerbBirthdays),
}
