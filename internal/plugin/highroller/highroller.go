// Package highroller is a game plugin: dice rolls and coin flips.
package highroller

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/dice"
	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/pkg/cmd"
)

// Stats persists coin-flip wins. *storage.Storage implements it.
type Stats interface {
	AddFlipWin(guildID, userID string) error
	FlipWins(guildID, userID string) (int, error)
}

type call struct {
	userID   string
	username string
	side     string
}

// HighRoller holds the pending coin-flip calls of every channel.
type HighRoller struct {
	roller *dice.Roller
	stats  Stats
	log    log.FieldLogger

	mu    sync.Mutex
	calls map[string][]call // key = channel
}

// New returns the plugin. stats may be nil, which disables win tracking.
func New(roller *dice.Roller, stats Stats, logger log.FieldLogger) *HighRoller {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &HighRoller{
		roller: roller,
		stats:  stats,
		log:    logger.WithField("plugin", "highroller"),
		calls:  make(map[string][]call),
	}
}

func (h *HighRoller) Tag() string         { return "highroller" }
func (h *HighRoller) ShortTag() string    { return "hr" }
func (h *HighRoller) Description() string { return "Dice rolls and coin flips" }

func (h *HighRoller) Register(gb *cmd.GroupBuilder) {
	gb.Register(h.Roll, "Rolls a dice of size <number>",
		cmd.Name("roll"),
		cmd.Params("self", "server", "channel", "author", "number"),
		cmd.Usage(`
			Rolls a dice of the size you provide. The number must be greater than 0.
			A dice formula such as 2d6+3 is rolled as written.
			`+"`!highroller roll <number>`"+`
			**Example:** `+"`!highroller roll 20`"+`
		`))
	gb.Register(h.CallFlip, "Call the next coinflip (Heads or Tails)",
		cmd.Name("callflip"),
		cmd.Params("self", "server", "channel", "author", "name"),
		cmd.Usage(`
			Call the next coinflip before it happens. Once two different people call it, the flip will automatically happen and the winner/s will be announced. You can call Heads or Tails. This command is not case sensitive.
			`+"`!highroller callflip <name>`"+`
			**Example call for heads:** `+"`!highroller callflip Heads`"+`
			**Example call for tails:** `+"`!highroller callflip Tails`"+`
		`))
	gb.Register(h.FlipCoin, "Flips a coin",
		cmd.Name("flipcoin"),
		cmd.Usage(`
			Flips a coin.
			`+"`!highroller flipcoin`"+`
		`))
	gb.Register(h.Wins, "Shows how many coin flips you have won",
		cmd.Name("wins"),
		cmd.Usage(`
			Shows how many called coin flips you have won on this server.
			`+"`!highroller wins`"+`
		`))
}

// Roll rolls one die of the given size, or a dice formula.
func (h *HighRoller) Roll(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	number := inv.Param("number")

	if n, err := strconv.Atoi(number); err == nil {
		if n < 1 {
			h.log.Debug("[roll]: You can't roll a dice smaller than 1.")
			return env.Send(ctx, "You can't roll a dice smaller than 1.")
		}
		result, err := h.roller.Die(n)
		if err != nil {
			return err
		}
		h.log.Debugf("[roll]: %s rolled a %d", env.AuthorName, result)
		return env.Send(ctx, fmt.Sprintf("%s rolled a %d", env.Mention(), result))
	}

	res, err := h.roller.Formula(number)
	if err != nil {
		h.log.WithError(err).Debug("[roll]: bad formula")
		return env.Send(ctx, "You can't roll a dice smaller than 1.")
	}
	h.log.Debugf("[roll]: %s rolled %s = %d", env.AuthorName, res.Input, res.Total)
	return env.Send(ctx, fmt.Sprintf("%s rolled %s = **%d**", env.Mention(), res.Calculation, res.Total))
}

// CallFlip records a heads/tails call. The second distinct caller in a
// channel triggers the flip.
func (h *HighRoller) CallFlip(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}

	var side string
	switch strings.ToLower(inv.Param("name")) {
	case "head", "heads":
		side = "heads"
	case "tail", "tails":
		side = "tails"
	default:
		return env.Send(ctx, "You have to specify heads or tails!")
	}

	h.mu.Lock()
	pending := h.calls[env.ChannelID]
	replaced := false
	for i := range pending {
		if pending[i].userID == env.AuthorID {
			pending[i].side = side
			replaced = true
		}
	}
	if !replaced {
		pending = append(pending, call{userID: env.AuthorID, username: env.AuthorName, side: side})
	}
	if len(pending) < 2 {
		h.calls[env.ChannelID] = pending
		h.mu.Unlock()
		return nil
	}
	delete(h.calls, env.ChannelID)
	h.mu.Unlock()

	result, err := h.flip()
	if err != nil {
		return err
	}
	p1, p2 := pending[0], pending[1]
	outcome := strings.ToLower(result)

	var message string
	var winners []call
	switch {
	case outcome == p1.side && outcome == p2.side:
		message = fmt.Sprintf("It is a tie between <@%s> and <@%s>!", p1.userID, p2.userID)
		winners = []call{p1, p2}
	case outcome == p1.side:
		message = fmt.Sprintf("<@%s> wins the coin flip!", p1.userID)
		winners = []call{p1}
	case outcome == p2.side:
		message = fmt.Sprintf("<@%s> wins the coin flip!", p2.userID)
		winners = []call{p2}
	default:
		message = "Nobody wins the coin flip!"
	}
	h.log.Debugf("[callflip]: %s between %s and %s", result, p1.username, p2.username)

	if h.stats != nil {
		for _, w := range winners {
			if err := h.stats.AddFlipWin(env.GuildID, w.userID); err != nil {
				h.log.WithError(err).Warn("failed to record flip win")
			}
		}
	}
	return env.Send(ctx, result+"! "+message)
}

// FlipCoin flips a coin.
func (h *HighRoller) FlipCoin(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	result, err := h.flip()
	if err != nil {
		return err
	}
	h.log.Debugf("[flipcoin]: %s!", result)
	return env.Send(ctx, result+"!")
}

// Wins reports the author's recorded flip wins.
func (h *HighRoller) Wins(ctx context.Context, inv *cmd.Invocation) error {
	env, err := plugin.EnvFrom(inv)
	if err != nil {
		return err
	}
	if h.stats == nil {
		return env.Send(ctx, "Coin flip wins are not being tracked.")
	}
	n, err := h.stats.FlipWins(env.GuildID, env.AuthorID)
	if err != nil {
		return fmt.Errorf("load flip wins: %w", err)
	}
	return env.Send(ctx, fmt.Sprintf("%s has won %d coin flip(s).", env.Mention(), n))
}

func (h *HighRoller) flip() (string, error) {
	n, err := h.roller.Die(2)
	if err != nil {
		return "", err
	}
	if n == 1 {
		return "Heads", nil
	}
	return "Tails", nil
}
