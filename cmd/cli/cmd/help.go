package cmd

import (
	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "commands [plugin]",
	Short: "Print the bot's command help, or a plugin's",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		text := s.router.Prefix() + "help"
		if len(args) == 1 {
			text += " " + args[0]
		}
		_, err = s.router.Handle(cmd.Context(), text, consoleEnv(cmd.OutOrStdout(), "console"))
		return err
	},
}

func init() {
	rootCmd.AddCommand(helpCmd)
}
