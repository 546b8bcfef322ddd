package cmd

import (
	"fmt"
	"strings"
)

// ParserType tags how raw argument text is turned into tokens.
type ParserType int

const (
	// Spaces splits on single spaces; blank input yields no tokens.
	Spaces ParserType = iota
	// All keeps the whole text as one token.
	All
	// Custom defers to a caller supplied function.
	Custom
)

func (t ParserType) String() string {
	switch t {
	case Spaces:
		return "SPACES"
	case All:
		return "ALL"
	case Custom:
		return "CUSTOM"
	default:
		return fmt.Sprintf("ParserType(%d)", int(t))
	}
}

// ParseParserType maps a config value ("spaces", "all") to a built-in type.
func ParseParserType(s string) (ParserType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spaces", "":
		return Spaces, nil
	case "all":
		return All, nil
	}
	return Spaces, fmt.Errorf("unknown parser type %q", s)
}

// ParseFunc turns raw argument text into ordered tokens.
type ParseFunc func(raw string) []string

// Parser pairs a ParseFunc with the type it implements.
type Parser struct {
	Type  ParserType
	Parse ParseFunc
}

var (
	SpacesParser = Parser{Type: Spaces, Parse: ParseSpaces}
	AllParser    = Parser{Type: All, Parse: ParseAll}
)

// CustomParser wraps fn as a Custom parser.
func CustomParser(fn ParseFunc) Parser {
	return Parser{Type: Custom, Parse: fn}
}

// ParserFor returns the built-in parser for t. Custom has no built-in
// function, so it reports false.
func ParserFor(t ParserType) (Parser, bool) {
	switch t {
	case Spaces:
		return SpacesParser, true
	case All:
		return AllParser, true
	default:
		return Parser{}, false
	}
}

func (p Parser) parse(raw string) []string {
	if p.Parse == nil {
		return ParseSpaces(raw)
	}
	return p.Parse(raw)
}

// ParseSpaces splits raw on the space character. Empty or all-space input
// yields zero tokens rather than one empty token.
func ParseSpaces(raw string) []string {
	if strings.Trim(raw, " ") == "" {
		return nil
	}
	return strings.Split(raw, " ")
}

// ParseAll returns raw as a single token, whitespace preserved.
func ParseAll(raw string) []string {
	return []string{raw}
}
