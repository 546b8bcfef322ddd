package discord

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/styrobot/pkg/retrylimit"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "hello", 10, []string{"hello"}},
		{"line break", "aaaa\nbbbb\ncc", 10, []string{"aaaa\nbbbb", "cc"}},
		{"hard cut", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMessage(tt.text, tt.limit)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("splitMessage(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestSplitMessage_UTF8(t *testing.T) {
	text := strings.Repeat("é", 10) // 2 bytes each
	for _, chunk := range splitMessage(text, 5) {
		if !utf8.ValidString(chunk) || len(chunk) > 5 {
			t.Fatalf("bad chunk %q", chunk)
		}
	}
}

func restErr(code int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: code, Status: http.StatusText(code)}}
}

func TestClassify(t *testing.T) {
	plain := errors.New("network")
	if got := classify(plain); got != plain {
		t.Errorf("plain error changed: %v", got)
	}
	if classify(nil) != nil {
		t.Error("nil not preserved")
	}

	var sc retrylimit.StatusCoder
	if err := classify(restErr(http.StatusTooManyRequests)); !errors.As(err, &sc) || sc.StatusCode() != 429 {
		t.Errorf("429 = %v", err)
	}
	if err := classify(restErr(http.StatusBadGateway)); !errors.As(err, &sc) || sc.StatusCode() != 502 {
		t.Errorf("502 = %v", err)
	}

	var rest *discordgo.RESTError
	err := classify(restErr(http.StatusForbidden))
	if !errors.As(err, &rest) {
		t.Fatalf("403 lost RESTError: %v", err)
	}
}
