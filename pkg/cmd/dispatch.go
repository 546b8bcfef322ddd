package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoOverload     = errors.New("no matching overload")
)

// Dispatch binds args to the parameter names of overload index of name and
// calls its handler, waiting for it to return.
//
// Dispatch sits on the live message path, so inconsistent input is logged
// and bound as well as possible instead of failing: an out-of-range index
// falls back to the first overload whose arity equals len(args), and an
// args/params length mismatch binds the pairs that exist. Only when there
// is no handler to call at all is an error returned. Errors from the
// handler itself are returned unchanged.
func (g *Group) Dispatch(ctx context.Context, name string, index int, args []string, data any) error {
	log := g.log.WithField("command", name)

	def, ok := g.commands[name]
	if !ok {
		log.Error("dispatch of unregistered command")
		return fmt.Errorf("%s %q: %w", g.name, name, ErrUnknownCommand)
	}

	if index < 0 || index >= len(def.Overloads) {
		log.Errorf("the index (%d) provided is invalid", index)
		index = def.match(len(args))
		if index == NotFound {
			return fmt.Errorf("%s %q with %d args: %w", g.name, name, len(args), ErrNoOverload)
		}
	}

	o := def.Overloads[index]
	if len(args) != len(o.Params) {
		log.Errorf("the number of arguments (%d) and the number of parameter names (%d) does not match", len(args), len(o.Params))
	}

	params := make(map[string]string, len(o.Params))
	for i, p := range o.Params {
		if i >= len(args) {
			break
		}
		params[p] = args[i]
	}

	log.WithFields(logrus.Fields{"overload": index, "args": args}).Debug("executing command")

	return o.Handler(ctx, &Invocation{
		Group:   g.name,
		Command: name,
		Params:  params,
		Args:    args,
		Data:    data,
	})
}

// Invoke resolves raw against name and dispatches the result. It reports
// false, without error, when the text does not match any overload.
func (g *Group) Invoke(ctx context.Context, name, raw string, fallback Parser, data any) (bool, error) {
	index, args := g.Resolve(name, raw, fallback)
	if index == NotFound {
		return false, nil
	}
	return true, g.Dispatch(ctx, name, index, args, data)
}
