// Package middleware holds the handler middleware the bot installs on every
// command.
package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/pkg/cmd"
)

// WithRecover turns a handler panic into an error so the message loop keeps
// running.
func WithRecover(logger log.FieldLogger) cmd.Middleware {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func(next cmd.HandlerFunc) cmd.HandlerFunc {
		return func(ctx context.Context, inv *cmd.Invocation) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.WithFields(log.Fields{
						"group":   inv.Group,
						"command": inv.Command,
						"stack":   string(debug.Stack()),
					}).Errorf("handler panic: %v", r)
					err = fmt.Errorf("%s %s: panic: %v", inv.Group, inv.Command, r)
				}
			}()
			return next(ctx, inv)
		}
	}
}
