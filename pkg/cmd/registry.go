package cmd

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Overload is one arity-specific variant of a command.
type Overload struct {
	Arity       int
	Params      []string
	Description string
	Usage       string
	Handler     HandlerFunc
}

// Definition is a named command: its overloads in registration order plus
// the parser policy shared by all of them.
type Definition struct {
	Name       string
	Overloads  []Overload
	Parser     Parser
	Overridden bool
}

// match returns the index of the first overload accepting n args, or NotFound.
func (d *Definition) match(n int) int {
	for i, o := range d.Overloads {
		if o.Arity == n {
			return i
		}
	}
	return NotFound
}

func (d *Definition) distinctArities() int {
	seen := make(map[int]struct{}, len(d.Overloads))
	for _, o := range d.Overloads {
		seen[o.Arity] = struct{}{}
	}
	return len(seen)
}

// Group holds the commands registered by one handler group (a plugin or the
// bot itself).
type Group struct {
	name     string
	commands map[string]*Definition
	log      logrus.FieldLogger
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Lookup returns the definition registered under name.
func (g *Group) Lookup(name string) (*Definition, bool) {
	def, ok := g.commands[name]
	return def, ok
}

// Has reports whether name is a command of the group.
func (g *Group) Has(name string) bool {
	_, ok := g.commands[name]
	return ok
}

// Names returns the group's command names, sorted.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.commands))
	for name := range g.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage returns the non-empty usage texts of name's overloads in
// registration order.
func (g *Group) Usage(name string) []string {
	def, ok := g.commands[name]
	if !ok {
		return nil
	}
	var out []string
	for _, o := range def.Overloads {
		if o.Usage != "" {
			out = append(out, o.Usage)
		}
	}
	return out
}

// Registry maps group names to their commands.
//
// A Registry is filled by a Builder during the load phase and is read-only
// once Build returns, so any number of dispatches may read it concurrently
// without locking. Nothing may register into it after that point.
type Registry struct {
	groups map[string]*Group
}

// Group returns the group registered under name.
func (r *Registry) Group(name string) (*Group, bool) {
	g, ok := r.groups[name]
	return g, ok
}

// Groups returns all group names, sorted.
func (r *Registry) Groups() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder collects registrations during the load phase.
type Builder struct {
	reg        *Registry
	log        logrus.FieldLogger
	middleware []Middleware
	built      bool
}

// NewBuilder returns an empty builder. A nil logger selects the logrus
// standard logger.
func NewBuilder(logger logrus.FieldLogger) *Builder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Builder{
		reg: &Registry{groups: make(map[string]*Group)},
		log: logger,
	}
}

// Use adds middleware applied to every handler registered afterwards.
func (b *Builder) Use(mws ...Middleware) {
	b.mustOpen()
	b.middleware = append(b.middleware, mws...)
}

// Group returns the builder for the named group, creating it on first use.
func (b *Builder) Group(name string) *GroupBuilder {
	b.mustOpen()
	g, ok := b.reg.groups[name]
	if !ok {
		g = &Group{
			name:     name,
			commands: make(map[string]*Definition),
			log:      b.log.WithField("group", name),
		}
		b.reg.groups[name] = g
	}
	return &GroupBuilder{b: b, g: g}
}

// Build ends the load phase and returns the registry. The builder cannot be
// used afterwards.
func (b *Builder) Build() *Registry {
	b.mustOpen()
	b.built = true
	return b.reg
}

func (b *Builder) mustOpen() {
	if b.built {
		panic("cmd: registry already built")
	}
}

// GroupBuilder registers commands into one group.
type GroupBuilder struct {
	b *Builder
	g *Group
}
