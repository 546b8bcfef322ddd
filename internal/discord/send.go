package discord

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/styrobot/pkg/retrylimit"
)

// maxMessageLen is Discord's limit on message content.
const maxMessageLen = 2000

// send posts text to channelID, split into messages Discord accepts.
func (b *Bot) send(ctx context.Context, channelID, text string) error {
	cfg := retrylimit.DefaultConfig()
	cfg.Logger = b.log.WithField("channel", channelID)

	for _, chunk := range splitMessage(text, maxMessageLen) {
		err := retrylimit.DoConfig(ctx, b.limiter, cfg, func() error {
			_, err := b.dg.ChannelMessageSend(channelID, chunk)
			return classify(err)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type restStatus struct {
	err  *discordgo.RESTError
	code int
}

func (r restStatus) Error() string   { return r.err.Error() }
func (r restStatus) Unwrap() error   { return r.err }
func (r restStatus) StatusCode() int { return r.code }

// classify exposes the HTTP status of REST errors to the retry loop and
// marks client errors other than 429 as final.
func classify(err error) error {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Response == nil {
		return err
	}
	code := rest.Response.StatusCode
	wrapped := restStatus{err: rest, code: code}
	if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
		return retrylimit.Fatal(wrapped)
	}
	return wrapped
}

// splitMessage cuts text into pieces of at most limit bytes, preferring
// line breaks and never splitting a UTF-8 sequence.
func splitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	var out []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		out = append(out, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}
