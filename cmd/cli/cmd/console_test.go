package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/keshon/styrobot/internal/command"
	"github.com/keshon/styrobot/internal/dice"
	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/internal/plugin/highroller"
	engine "github.com/keshon/styrobot/pkg/cmd"
)

func TestRunConsole(t *testing.T) {
	logger, _ := test.NewNullLogger()
	set, err := plugin.NewSet(highroller.New(dice.NewRoller(1), nil, logger))
	if err != nil {
		t.Fatal(err)
	}
	router, err := command.NewRouter(engine.NewBuilder(logger), set, command.Options{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("!say hello world\r\n\nhi there\n!hr roll 0\n")
	var out bytes.Buffer
	if err := runConsole(context.Background(), router, in, &out, "tester"); err != nil {
		t.Fatal(err)
	}

	want := "hello world\n" +
		"Not a command. Try !help\n" +
		"You can't roll a dice smaller than 1.\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}
