package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/keshon/styrobot/pkg/cmd"
)

type fakePlugin struct {
	tag, short string
}

func (f fakePlugin) Tag() string         { return f.tag }
func (f fakePlugin) ShortTag() string    { return f.short }
func (f fakePlugin) Description() string { return f.tag + " plugin" }
func (f fakePlugin) Register(gb *cmd.GroupBuilder) {
	gb.Register(func(context.Context, *cmd.Invocation) error { return nil }, "does nothing", cmd.Name("noop"))
}

func TestSet_Lookup(t *testing.T) {
	s, err := NewSet(fakePlugin{"zeta", ""}, fakePlugin{"highroller", "hr"})
	if err != nil {
		t.Fatal(err)
	}

	for _, tag := range []string{"highroller", "hr"} {
		p, ok := s.Lookup(tag)
		if !ok || p.Tag() != "highroller" {
			t.Errorf("Lookup(%q) = %v, %v", tag, p, ok)
		}
	}
	if _, ok := s.Lookup("nope"); ok {
		t.Error("Lookup(nope) found a plugin")
	}

	all := s.All()
	if len(all) != 2 || all[0].Tag() != "highroller" || all[1].Tag() != "zeta" {
		t.Errorf("All() order = %v", all)
	}
}

func TestNewSet_DuplicateTag(t *testing.T) {
	tests := []struct {
		name    string
		plugins []Plugin
	}{
		{"same tag", []Plugin{fakePlugin{"a", ""}, fakePlugin{"a", ""}}},
		{"short collides with tag", []Plugin{fakePlugin{"a", ""}, fakePlugin{"b", "a"}}},
		{"empty tag", []Plugin{fakePlugin{"", "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSet(tt.plugins...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSet_Register(t *testing.T) {
	s, err := NewSet(fakePlugin{"highroller", "hr"})
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := test.NewNullLogger()
	b := cmd.NewBuilder(logger)
	s.Register(b)
	reg := b.Build()

	g, ok := reg.Group("highroller")
	if !ok || !g.Has("noop") {
		t.Fatalf("highroller group not registered: %v", reg.Groups())
	}
	if _, ok := reg.Group("hr"); ok {
		t.Error("short tag must not create a group")
	}
}

func TestEnvFrom(t *testing.T) {
	env := &Env{AuthorID: "42"}
	got, err := EnvFrom(&cmd.Invocation{Data: env})
	if err != nil || got != env {
		t.Fatalf("EnvFrom = %v, %v", got, err)
	}
	if got.Mention() != "<@42>" {
		t.Errorf("Mention() = %q", got.Mention())
	}

	if _, err := EnvFrom(&cmd.Invocation{Group: "g", Command: "c"}); !errors.Is(err, ErrNoEnv) {
		t.Errorf("err = %v, want ErrNoEnv", err)
	}
	if err := (&Env{}).Send(context.Background(), "dropped"); err != nil {
		t.Errorf("Send without Reply = %v", err)
	}
}
