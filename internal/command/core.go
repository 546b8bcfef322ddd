package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/internal/version"
	"github.com/keshon/styrobot/pkg/cmd"
)

func (r *Router) registerCore(gb *cmd.GroupBuilder) {
	gb.Register(r.help, "Lists the bot commands and plugins",
		cmd.Name("help"),
		cmd.Usage(`
			Lists the bot's own commands and the installed plugins.
			`+"`!help`"))
	gb.Register(r.pluginHelp, "Lists the commands of <plugin>",
		cmd.Name("help"),
		cmd.Params("plugin"),
		cmd.Usage(`
			Lists the commands of a plugin, addressed by its tag or short tag.
			`+"`!help <plugin>`"+`
			**Example:** `+"`!help highroller`"))
	gb.Register(r.ping, "Checks that the bot is alive",
		cmd.Name("ping"))
	gb.Register(r.about, "Shows what this bot is",
		cmd.Name("about"))
	gb.Register(r.say, "Repeats <text>",
		cmd.Name("say"),
		cmd.Params("text"),
		cmd.WithParserType(cmd.All),
		cmd.Usage(`
			Repeats the text after the command, spaces included.
			`+"`!say <text>`"))
	if r.history != nil {
		gb.Register(r.showHistory, "Shows the last commands run here",
			cmd.Name("history"))
	}
}

func (r *Router) help(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(r.helpText(r.core, ""))

	if plugins := r.plugins.All(); len(plugins) > 0 {
		b.WriteString("\n\n**Plugins**\n")
		for _, p := range plugins {
			fmt.Fprintf(&b, "`%s%s`", r.prefix, p.Tag())
			if p.ShortTag() != "" {
				fmt.Fprintf(&b, " (`%s%s`)", r.prefix, p.ShortTag())
			}
			fmt.Fprintf(&b, "  - %s\n", p.Description())
		}
	}
	return env.Send(ctx, strings.TrimRight(b.String(), "\n"))
}

func (r *Router) pluginHelp(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	tag := inv.Param("plugin")
	p, ok := r.plugins.Lookup(tag)
	if !ok {
		return env.Send(ctx, fmt.Sprintf("No plugin is called `%s`.", tag))
	}
	g, _ := r.reg.Group(p.Tag())
	return env.Send(ctx, r.helpText(g, p.Tag()))
}

func (r *Router) ping(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	if r.latency == nil {
		return env.Send(ctx, "🏓 Pong!")
	}
	return env.Send(ctx, fmt.Sprintf("🏓 Pong! %dms", r.latency().Milliseconds()))
}

func (r *Router) about(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	return env.Send(ctx, fmt.Sprintf("**%s** %s\n%s\nBuilt %s with %s",
		version.AppName, version.Version, version.AppDescription, version.BuildDate, version.GoVersion))
}

func (r *Router) say(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	text := inv.Param("text")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return env.Send(ctx, text)
}

func (r *Router) showHistory(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	records, err := r.history.FetchCommandHistory(env.GuildID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(records) == 0 {
		return env.Send(ctx, "No commands yet.")
	}

	var b strings.Builder
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		name := rec.Command
		if rec.Group != CoreGroup {
			name = rec.Group + " " + name
		}
		fmt.Fprintf(&b, "%s  %s: `%s%s", rec.Datetime.Format("2006-01-02 15:04"), rec.Username, r.prefix, name)
		if rec.Param != "" {
			b.WriteString(" " + rec.Param)
		}
		b.WriteString("`\n")
	}
	return env.Send(ctx, strings.TrimRight(b.String(), "\n"))
}
