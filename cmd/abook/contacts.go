package main

import (
	"github.com/matsen/abook/internal/assistant"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(changeCmd)
	rootCmd.AddCommand(phoneCmd)
	rootCmd.AddCommand(allCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name> <phone>",
	Short: "Add a contact, or another phone to an existing one",
	Long: `Add a contact with a phone number. If the contact exists, the phone
is appended to its list.

Example:
  abook add Alice +380501234567`,
	Args: cobra.ArbitraryArgs,
	RunE: runVerb(assistant.VerbAdd),
}

var changeCmd = &cobra.Command{
	Use:   "change <name> <old-phone> <new-phone>",
	Short: "Replace one of a contact's phones",
	Long: `Replace the first phone equal to old-phone with new-phone.

The new phone is stored as given; it is not checked against the
+380XXXXXXXXX format.

Example:
  abook change Alice +380501234567 +380661112233`,
	Args: cobra.ArbitraryArgs,
	RunE: runVerb(assistant.VerbChange),
}

var phoneCmd = &cobra.Command{
	Use:   "phone <name>",
	Short: "Show a contact's phones",
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(assistant.VerbPhone),
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Show all contacts",
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(assistant.VerbAll),
}

// runVerb returns a RunE that loads the book, runs one assistant command,
// and saves the book if the command changed it.
func runVerb(verb string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := openApp()
		if err != nil {
			return err
		}
		defer sess.close()

		res := assistant.New(sess.book, sess.log).Run(verb, args)
		if res.Changed {
			if err := sess.save(); err != nil {
				return err
			}
		}
		return writeResult(cmd, res)
	}
}
