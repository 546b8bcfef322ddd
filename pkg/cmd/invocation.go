// Package cmd provides a transport-agnostic command engine. Handlers register
// overloads of a command under a group during a load phase; at runtime free
// text is parsed, resolved to one overload by arity and dispatched to the
// bound handler. How text reaches the engine (Discord, console) is defined by
// adapters that wrap this.
package cmd

import "context"

// Invocation carries what a handler receives: parameters bound by name, the
// positional args they were bound from, and an opaque payload. Adapters set
// Data to their environment (guild, channel, author, reply function).
type Invocation struct {
	Group   string
	Command string
	Params  map[string]string
	Args    []string
	Data    any
}

// Param returns the value bound to name, or "" when nothing was bound.
func (inv *Invocation) Param(name string) string {
	return inv.Params[name]
}

// HandlerFunc is the target of one overload, captured at registration.
type HandlerFunc func(ctx context.Context, inv *Invocation) error
