package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// NotFound is the overload index reported when nothing matches.
const NotFound = -1

// Resolve parses raw for the command name and picks the overload to run.
//
// The command's own parser is used when it overrides the default, otherwise
// fallback. A command whose overloads all share one arity and whose active
// parser is All gets overload 0 with the whole text as its only argument.
// Otherwise the first overload, in registration order, whose arity equals
// the token count wins. Unknown commands and arity mismatches return
// (NotFound, nil).
func (g *Group) Resolve(name, raw string, fallback Parser) (int, []string) {
	def, ok := g.commands[name]
	if !ok {
		return NotFound, nil
	}

	parser := fallback
	if def.Overridden {
		parser = def.Parser
	}
	tokens := parser.parse(raw)

	log := g.log.WithFields(logrus.Fields{"command": name, "parser": parser.Type})
	log.Debug("command parsed")

	if parser.Type == All && def.distinctArities() == 1 {
		args := []string{strings.Join(tokens, " ")}
		log.WithField("args", args).Debug("whole text bound")
		return 0, args
	}

	index := def.match(len(tokens))
	if index == NotFound {
		return NotFound, nil
	}

	args := make([]string, def.Overloads[index].Arity)
	copy(args, tokens)
	log.WithField("args", args).Debug("overload resolved")
	return index, args
}
