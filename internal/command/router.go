// Package command routes chat messages to registered commands and provides
// the bot's own commands.
//
// A message addresses a core command as "<prefix><command> args" and a
// plugin command as "<prefix><tag> <command> args", where tag is the
// plugin's tag or short tag.
package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/internal/storage"
	"github.com/keshon/styrobot/pkg/cmd"
)

// CoreGroup is the group holding the bot's own commands.
const CoreGroup = "core"

type Options struct {
	Prefix string     // default "!"
	Parser cmd.Parser // zero value selects cmd.SpacesParser
	Logger log.FieldLogger
	// Latency reports the chat connection latency for ping; optional.
	Latency func() time.Duration
	// History backs the history command; nil leaves it out.
	History HistorySource
}

// HistorySource lists a guild's recent commands, oldest first.
type HistorySource interface {
	FetchCommandHistory(guildID string) ([]storage.CommandHistoryRecord, error)
}

// Router owns the built registry and turns message text into dispatches.
type Router struct {
	reg     *cmd.Registry
	core    *cmd.Group
	plugins *plugin.Set
	prefix  string
	parser  cmd.Parser
	log     log.FieldLogger
	latency func() time.Duration
	history HistorySource
}

// NewRouter registers the core commands and every plugin into b, builds the
// registry and returns a router over it. b cannot be used afterwards.
func NewRouter(b *cmd.Builder, plugins *plugin.Set, opts Options) (*Router, error) {
	if plugins == nil {
		plugins, _ = plugin.NewSet()
	}
	if opts.Prefix == "" {
		opts.Prefix = "!"
	}
	if opts.Parser.Parse == nil {
		if p, ok := cmd.ParserFor(opts.Parser.Type); ok {
			opts.Parser = p
		} else {
			opts.Parser = cmd.SpacesParser
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}

	r := &Router{
		plugins: plugins,
		prefix:  opts.Prefix,
		parser:  opts.Parser,
		log:     opts.Logger,
		latency: opts.Latency,
		history: opts.History,
	}
	r.registerCore(b.Group(CoreGroup))
	plugins.Register(b)
	r.reg = b.Build()
	r.core, _ = r.reg.Group(CoreGroup)

	for _, p := range plugins.All() {
		for _, tag := range []string{p.Tag(), p.ShortTag()} {
			if tag == CoreGroup || r.core.Has(tag) {
				return nil, fmt.Errorf("plugin tag %q collides with a core command", tag)
			}
		}
	}
	return r, nil
}

// Registry returns the registry the router dispatches against.
func (r *Router) Registry() *cmd.Registry { return r.reg }

// Prefix returns the command prefix.
func (r *Router) Prefix() string { return r.prefix }

// Handle runs the command addressed by text. It reports false when text is
// not a command: no prefix, or an unknown command or tag. Handler errors
// are returned as is.
func (r *Router) Handle(ctx context.Context, text string, env *plugin.Env) (bool, error) {
	body, ok := strings.CutPrefix(text, r.prefix)
	if !ok {
		return false, nil
	}
	name, rest, _ := strings.Cut(body, " ")
	if name == "" {
		return false, nil
	}

	if env == nil {
		env = &plugin.Env{}
	}
	if env.DispatchID == "" {
		env.DispatchID = uuid.NewString()
	}
	logger := r.log.WithFields(log.Fields{
		"dispatch_id": env.DispatchID,
		"guild":       env.GuildID,
		"channel":     env.ChannelID,
	})

	if p, ok := r.plugins.Lookup(name); ok {
		g, _ := r.reg.Group(p.Tag())
		logger.WithField("group", p.Tag()).Debug("plugin command received")
		return true, r.handlePlugin(ctx, g, p.Tag(), rest, env)
	}
	if !r.core.Has(name) {
		logger.WithField("command", name).Debug("not a command")
		return false, nil
	}
	return true, r.invoke(ctx, r.core, "", name, rest, env)
}

func (r *Router) handlePlugin(ctx context.Context, g *cmd.Group, tag, rest string, env *plugin.Env) error {
	name, args, _ := strings.Cut(rest, " ")
	switch {
	case name == "":
		return env.Send(ctx, r.helpText(g, tag))
	case name == "help" && !g.Has("help"):
		if args == "" {
			return env.Send(ctx, r.helpText(g, tag))
		}
		return env.Send(ctx, r.usageText(g, tag, args))
	case !g.Has(name):
		return env.Send(ctx, fmt.Sprintf("Unknown command `%s`. Try `%s%s help`.", name, r.prefix, tag))
	}
	return r.invoke(ctx, g, tag, name, args, env)
}

func (r *Router) invoke(ctx context.Context, g *cmd.Group, tag, name, args string, env *plugin.Env) error {
	ok, err := g.Invoke(ctx, name, args, r.parser, env)
	if err != nil {
		return err
	}
	if !ok {
		lines := r.commandLines(g, tag, name)
		return env.Send(ctx, "Wrong number of arguments. Usage:\n"+strings.Join(lines, "\n"))
	}
	return nil
}

// helpLines renders g's help with the configured prefix.
func (r *Router) helpLines(g *cmd.Group, tag string) []string {
	lines := g.Help(tag)
	if r.prefix == "!" {
		return lines
	}
	for i, l := range lines {
		lines[i] = "`" + r.prefix + strings.TrimPrefix(l, "`!")
	}
	return lines
}

func (r *Router) helpText(g *cmd.Group, tag string) string {
	return strings.Join(r.helpLines(g, tag), "\n")
}

// commandLines returns the help lines of one command.
func (r *Router) commandLines(g *cmd.Group, tag, name string) []string {
	head := "`" + r.prefix
	if tag != "" {
		head += tag + " "
	}
	head += name + " "

	var out []string
	for _, l := range r.helpLines(g, tag) {
		if strings.HasPrefix(l, head) {
			out = append(out, l)
		}
	}
	return out
}

func (r *Router) usageText(g *cmd.Group, tag, name string) string {
	if !g.Has(name) {
		return fmt.Sprintf("Unknown command `%s`.", name)
	}
	usage := g.Usage(name)
	if len(usage) == 0 {
		return strings.Join(r.commandLines(g, tag, name), "\n")
	}
	return strings.Join(usage, "\n\n")
}
