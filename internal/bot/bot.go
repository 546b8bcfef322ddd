// Package bot assembles the command router every frontend shares: core
// commands, plugins and the handler middleware chain.
package bot

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/command"
	"github.com/keshon/styrobot/internal/config"
	"github.com/keshon/styrobot/internal/dice"
	"github.com/keshon/styrobot/internal/middleware"
	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/internal/plugin/highroller"
	"github.com/keshon/styrobot/internal/storage"
	"github.com/keshon/styrobot/pkg/cmd"
)

// Plugins returns the installed plugins. store may be nil.
func Plugins(store *storage.Storage, logger log.FieldLogger) (*plugin.Set, error) {
	var stats highroller.Stats
	if store != nil {
		stats = store
	}
	roller := dice.NewRoller(time.Now().UnixNano())
	return plugin.NewSet(
		highroller.New(roller, stats, logger),
	)
}

// NewRouter builds the registry and router from cfg. Without a store no
// history is kept. latency may be nil.
func NewRouter(cfg *config.Config, store *storage.Storage, logger log.FieldLogger, latency func() time.Duration) (*command.Router, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	plugins, err := Plugins(store, logger)
	if err != nil {
		return nil, err
	}

	opts := command.Options{
		Prefix:  cfg.CommandPrefix,
		Parser:  cfg.Parser(),
		Logger:  logger,
		Latency: latency,
	}

	b := cmd.NewBuilder(logger.WithField("component", "registry"))
	b.Use(
		middleware.WithRecover(logger),
		middleware.WithCommandLogger(logger),
	)
	if store != nil {
		b.Use(middleware.WithHistory(store, logger))
		opts.History = store
	}

	return command.NewRouter(b, plugins, opts)
}
