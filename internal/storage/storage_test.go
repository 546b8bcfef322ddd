package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/keshon/styrobot/datastore"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	cfg := datastore.DefaultConfig(filepath.Join(t.TempDir(), "store.json"))
	cfg.AutoSaveInterval = 0
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := NewWithStore(ds)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommandHistory_Bounded(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		err := s.AppendCommandToHistory("g1", CommandHistoryRecord{
			Command:  "roll",
			Param:    fmt.Sprint(i),
			Datetime: time.Unix(int64(i), 0),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := s.FetchCommandHistory("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != commandHistoryLimit {
		t.Fatalf("history has %d entries, want %d", len(history), commandHistoryLimit)
	}
	if history[0].Param != "5" || history[len(history)-1].Param != fmt.Sprint(commandHistoryLimit+4) {
		t.Fatalf("kept wrong window: first %s last %s", history[0].Param, history[len(history)-1].Param)
	}

	other, err := s.FetchCommandHistory("g2")
	if err != nil || len(other) != 0 {
		t.Fatalf("other guild history = %v, %v", other, err)
	}
}

func TestFlipWins_Concurrent(t *testing.T) {
	s := newTestStorage(t)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.AddFlipWin("", "u1"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	wins, err := s.FlipWins("", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if wins != 25 {
		t.Fatalf("wins = %d, want 25", wins)
	}
	if wins, _ := s.FlipWins("", "u2"); wins != 0 {
		t.Fatalf("u2 wins = %d", wins)
	}
}
