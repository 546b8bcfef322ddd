// Package plugin defines what a command plugin provides to the bot and the
// per-message environment its handlers receive.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/keshon/styrobot/pkg/cmd"
)

// ErrNoEnv is returned by handlers invoked without a message environment.
var ErrNoEnv = errors.New("invocation carries no message environment")

// Env is the chat context of one incoming message. It travels to handlers
// as the invocation's Data.
type Env struct {
	DispatchID string
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string

	// Reply posts text to the channel the message came from.
	Reply func(ctx context.Context, text string) error
}

// Send replies through Reply; an Env without one drops the text.
func (e *Env) Send(ctx context.Context, text string) error {
	if e.Reply == nil {
		return nil
	}
	return e.Reply(ctx, text)
}

// Mention formats the author as a chat mention.
func (e *Env) Mention() string {
	return "<@" + e.AuthorID + ">"
}

// EnvFrom extracts the Env from an invocation.
func EnvFrom(inv *cmd.Invocation) (*Env, error) {
	env, ok := inv.Data.(*Env)
	if !ok || env == nil {
		return nil, fmt.Errorf("%s %s: %w", inv.Group, inv.Command, ErrNoEnv)
	}
	return env, nil
}

// Plugin is a group of commands addressed as "<prefix><tag> <command>".
type Plugin interface {
	// Tag is the plugin's name and the group its commands register in.
	Tag() string
	// ShortTag is an alias for Tag; empty when there is none.
	ShortTag() string
	Description() string
	Register(gb *cmd.GroupBuilder)
}

// Set is a fixed collection of plugins indexed by tag and short tag.
type Set struct {
	plugins []Plugin
	byTag   map[string]Plugin
}

// NewSet indexes plugins. Tags and short tags must be unique across the set.
func NewSet(plugins ...Plugin) (*Set, error) {
	s := &Set{byTag: make(map[string]Plugin)}
	for _, p := range plugins {
		if p.Tag() == "" {
			return nil, errors.New("plugin with empty tag")
		}
		for _, t := range []string{p.Tag(), p.ShortTag()} {
			if t == "" {
				continue
			}
			if other, dup := s.byTag[t]; dup {
				return nil, fmt.Errorf("tag %q of plugin %s already used by %s", t, p.Tag(), other.Tag())
			}
			s.byTag[t] = p
		}
		s.plugins = append(s.plugins, p)
	}
	sort.Slice(s.plugins, func(i, j int) bool { return s.plugins[i].Tag() < s.plugins[j].Tag() })
	return s, nil
}

// Lookup finds a plugin by tag or short tag.
func (s *Set) Lookup(tag string) (Plugin, bool) {
	p, ok := s.byTag[tag]
	return p, ok
}

// All returns the plugins sorted by tag.
func (s *Set) All() []Plugin {
	return append([]Plugin(nil), s.plugins...)
}

// Register lets every plugin register its commands into its own group.
func (s *Set) Register(b *cmd.Builder) {
	for _, p := range s.plugins {
		p.Register(b.Group(p.Tag()))
	}
}
