package middleware

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/internal/storage"
	"github.com/keshon/styrobot/pkg/cmd"
)

// HistoryStore records executed commands. *storage.Storage implements it.
type HistoryStore interface {
	AppendCommandToHistory(guildID string, record storage.CommandHistoryRecord) error
}

// WithHistory appends each command run from a chat message to the guild's
// command history. Failures to record are logged, never returned.
func WithHistory(store HistoryStore, logger log.FieldLogger) cmd.Middleware {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func(next cmd.HandlerFunc) cmd.HandlerFunc {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			err := next(ctx, inv)

			env, ok := inv.Data.(*plugin.Env)
			if !ok || env == nil || store == nil {
				return err
			}
			record := storage.CommandHistoryRecord{
				DispatchID: env.DispatchID,
				ChannelID:  env.ChannelID,
				UserID:     env.AuthorID,
				Username:   env.AuthorName,
				Group:      inv.Group,
				Command:    inv.Command,
				Param:      strings.Join(inv.Args, " "),
				Datetime:   time.Now(),
			}
			if e := store.AppendCommandToHistory(env.GuildID, record); e != nil {
				logger.WithError(e).WithField("command", inv.Command).Warn("failed to record command history")
			}
			return err
		}
	}
}
