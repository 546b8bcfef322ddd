package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keshon/styrobot/internal/command"
	"github.com/keshon/styrobot/internal/plugin"
)

var consoleUser string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Read commands from stdin and print the replies",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runConsole(ctx, s.router, cmd.InOrStdin(), cmd.OutOrStdout(), consoleUser)
	},
}

func init() {
	consoleCmd.Flags().StringVarP(&consoleUser, "user", "u", "console", "name to run commands as")
	rootCmd.AddCommand(consoleCmd)
}

func consoleEnv(out io.Writer, user string) *plugin.Env {
	return &plugin.Env{
		GuildID:    "console",
		ChannelID:  "console",
		AuthorID:   user,
		AuthorName: user,
		Reply: func(_ context.Context, text string) error {
			_, err := fmt.Fprintln(out, text)
			return err
		},
	}
}

// runConsole handles one command per line until in is exhausted or ctx is
// done. Lines that are not commands are reported, handler errors printed.
func runConsole(ctx context.Context, router *command.Router, in io.Reader, out io.Writer, user string) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		handled, err := router.Handle(ctx, line, consoleEnv(out, user))
		switch {
		case err != nil:
			fmt.Fprintf(out, "Error running command: %v\n", err)
		case !handled:
			fmt.Fprintf(out, "Not a command. Try %shelp\n", router.Prefix())
		}
	}
	return scanner.Err()
}
