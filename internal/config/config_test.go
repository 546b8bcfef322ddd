package config

import (
	"errors"
	"os"
	"testing"

	"github.com/keshon/styrobot/pkg/cmd"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DISCORD_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StoragePath != "datastore.json" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.CommandPrefix != "!" {
		t.Errorf("CommandPrefix = %q", cfg.CommandPrefix)
	}
	if cfg.SendRate != 5 {
		t.Errorf("SendRate = %v", cfg.SendRate)
	}
	if cfg.Parser().Type != cmd.Spaces {
		t.Errorf("Parser() = %v", cfg.Parser().Type)
	}
	if !errors.Is(cfg.RequireToken(), ErrMissingToken) {
		t.Errorf("RequireToken() = %v, want ErrMissingToken", cfg.RequireToken())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DISCORD_TOKEN", "secret")
	t.Setenv("STORAGE_PATH", "/tmp/bot.json")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("DEFAULT_PARSER", "all")
	t.Setenv("SEND_RATE", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.RequireToken(); err != nil {
		t.Errorf("RequireToken() = %v", err)
	}
	if cfg.StoragePath != "/tmp/bot.json" || cfg.CommandPrefix != "?" || cfg.SendRate != 2.5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Parser().Type != cmd.All {
		t.Errorf("Parser() = %v, want ALL", cfg.Parser().Type)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "unknown parser", key: "DEFAULT_PARSER", value: "custom"},
		{name: "zero rate", key: "SEND_RATE", value: "0"},
		{name: "bad rate", key: "SEND_RATE", value: "fast"},
		{name: "blank prefix", key: "COMMAND_PREFIX", value: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}
