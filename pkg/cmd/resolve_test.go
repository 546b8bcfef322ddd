package cmd

import (
	"reflect"
	"strings"
	"testing"
)

func buildGroup(t *testing.T, register func(gb *GroupBuilder)) *Group {
	t.Helper()
	b := newTestBuilder()
	register(b.Group("g"))
	g, ok := b.Build().Group("g")
	if !ok {
		t.Fatal("group missing")
	}
	return g
}

func TestResolve(t *testing.T) {
	g := buildGroup(t, func(gb *GroupBuilder) {
		gb.Register(nop, "Rolls a dice of size <number>", Name("roll"), Params("number"))
		gb.Register(nop, "Call the next coinflip", Name("callflip"), Params("name"))
		gb.Register(nop, "Flips a coin", Name("flipcoin"))
		gb.Register(nop, "Swap", Name("swap"), Params("a", "b"))
		gb.Register(nop, "Swap three", Name("swap"), Params("a", "b", "c"))
		gb.Register(nop, "Say", Name("say"), Params("text"), WithParserType(All))
	})

	tests := []struct {
		name      string
		command   string
		raw       string
		fallback  Parser
		wantIndex int
		wantArgs  []string
	}{
		{name: "roll 20", command: "roll", raw: "20", fallback: SpacesParser, wantIndex: 0, wantArgs: []string{"20"}},
		{name: "callflip Heads", command: "callflip", raw: "Heads", fallback: SpacesParser, wantIndex: 0, wantArgs: []string{"Heads"}},
		{name: "zero arity empty text", command: "flipcoin", raw: "", fallback: SpacesParser, wantIndex: 0, wantArgs: []string{}},
		{name: "zero arity only spaces", command: "flipcoin", raw: "   ", fallback: SpacesParser, wantIndex: 0, wantArgs: []string{}},
		{name: "arity mismatch", command: "roll", raw: "1 2", fallback: SpacesParser, wantIndex: NotFound},
		{name: "arity mismatch zero", command: "roll", raw: "", fallback: SpacesParser, wantIndex: NotFound},
		{name: "unknown command", command: "nope", raw: "x", fallback: SpacesParser, wantIndex: NotFound},
		{name: "second overload", command: "swap", raw: "x y z", fallback: SpacesParser, wantIndex: 1, wantArgs: []string{"x", "y", "z"}},
		{name: "first overload", command: "swap", raw: "x y", fallback: SpacesParser, wantIndex: 0, wantArgs: []string{"x", "y"}},
		{name: "overridden all keeps spaces", command: "say", raw: "hello  big world", fallback: SpacesParser, wantIndex: 0, wantArgs: []string{"hello  big world"}},
		{name: "default all on single arity", command: "callflip", raw: "Heads or Tails", fallback: AllParser, wantIndex: 0, wantArgs: []string{"Heads or Tails"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, args := g.Resolve(tt.command, tt.raw, tt.fallback)
			if index != tt.wantIndex {
				t.Fatalf("index = %d, want %d", index, tt.wantIndex)
			}
			if tt.wantIndex == NotFound {
				if len(args) != 0 {
					t.Fatalf("args = %q, want none", args)
				}
				return
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestResolve_FirstRegisteredWinsOnTie(t *testing.T) {
	g := buildGroup(t, func(gb *GroupBuilder) {
		gb.Register(nop, "first", Name("pair"), Params("a", "b"))
		gb.Register(nop, "second", Name("pair"), Params("x", "y"))
	})

	for i := 0; i < 10; i++ {
		index, args := g.Resolve("pair", "1 2", SpacesParser)
		if index != 0 {
			t.Fatalf("index = %d, want first registered overload", index)
		}
		if !reflect.DeepEqual(args, []string{"1", "2"}) {
			t.Fatalf("args = %q", args)
		}
	}
}

func TestResolve_AllShortcutIgnoresDeclaredArity(t *testing.T) {
	g := buildGroup(t, func(gb *GroupBuilder) {
		gb.Register(nop, "two params", Name("note"), Params("title", "body"), WithParserType(All))
	})

	index, args := g.Resolve("note", "some free text", SpacesParser)
	if index != 0 || !reflect.DeepEqual(args, []string{"some free text"}) {
		t.Fatalf("Resolve() = %d, %q; want 0 and the whole text", index, args)
	}
}

func TestResolve_AllWithSeveralAritiesScans(t *testing.T) {
	g := buildGroup(t, func(gb *GroupBuilder) {
		gb.Register(nop, "none", Name("note"))
		gb.Register(nop, "one", Name("note"), Params("text"))
	})

	index, args := g.Resolve("note", "a b", AllParser)
	if index != 1 || !reflect.DeepEqual(args, []string{"a b"}) {
		t.Fatalf("Resolve() = %d, %q; want overload 1 with one token", index, args)
	}
}

func TestResolve_CustomParser(t *testing.T) {
	csv := func(raw string) []string {
		if raw == "" {
			return nil
		}
		return strings.Split(raw, ",")
	}
	g := buildGroup(t, func(gb *GroupBuilder) {
		gb.Register(nop, "pair", Name("pair"), Params("a", "b"), WithParser(csv))
	})

	index, args := g.Resolve("pair", "x y,z", AllParser)
	if index != 0 || !reflect.DeepEqual(args, []string{"x y", "z"}) {
		t.Fatalf("Resolve() = %d, %q", index, args)
	}
	if index, _ := g.Resolve("pair", "x y z", SpacesParser); index != NotFound {
		t.Fatalf("custom parser ignored: index %d", index)
	}
}

func TestResolve_NilParseFallsBackToSpaces(t *testing.T) {
	g := buildGroup(t, func(gb *GroupBuilder) {
		gb.Register(nop, "swap", Name("swap"), Params("a", "b"))
	})

	index, args := g.Resolve("swap", "a b", Parser{})
	if index != 0 || !reflect.DeepEqual(args, []string{"a", "b"}) {
		t.Fatalf("Resolve() = %d, %q", index, args)
	}
}
