package middleware

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/pkg/cmd"
)

// WithCommandLogger logs every command execution with its duration.
func WithCommandLogger(logger log.FieldLogger) cmd.Middleware {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func(next cmd.HandlerFunc) cmd.HandlerFunc {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := next(ctx, inv)

			entry := logger.WithFields(log.Fields{
				"group":    inv.Group,
				"command":  inv.Command,
				"args":     inv.Args,
				"duration": time.Since(start),
			})
			if env, ok := inv.Data.(*plugin.Env); ok && env != nil {
				entry = entry.WithFields(log.Fields{
					"dispatch_id": env.DispatchID,
					"guild":       env.GuildID,
					"user":        env.AuthorName,
				})
			}
			if err != nil {
				entry.WithError(err).Warn("command failed")
			} else {
				entry.Info("command executed")
			}
			return err
		}
	}
}
