package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/keshon/styrobot/internal/bot"
	"github.com/keshon/styrobot/internal/command"
	"github.com/keshon/styrobot/internal/config"
	"github.com/keshon/styrobot/internal/storage"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "styrobot",
	Short: "Run bot commands from a terminal",
	Long: `styrobot-cli drives the same command router as the Discord bot,
reading commands from the terminal and printing the replies.

Configuration comes from .env and the environment (STORAGE_PATH,
COMMAND_PREFIX, DEFAULT_PARSER, LOG_LEVEL).`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// session is the router plus the storage it writes to.
type session struct {
	cfg    *config.Config
	store  *storage.Storage
	router *command.Router
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.SetupLogging()
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	router, err := bot.NewRouter(cfg, store, log.StandardLogger(), nil)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{cfg: cfg, store: store, router: router}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		printError("flush storage", err)
	}
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
