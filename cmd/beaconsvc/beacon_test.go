package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"svckit/internal/config"
)

func TestBeaconService_AppliesConfiguration(t *testing.T) {
	b := newBeaconService(config.Default(), "")

	if got, want := b.interval(), 30*time.Second; got != want {
		t.Errorf("interval() = %v, want %v", got, want)
	}

	b.apply(&config.Config{HeartbeatInterval: 5 * time.Second})
	if got, want := b.interval(), 5*time.Second; got != want {
		t.Errorf("interval() after apply = %v, want %v", got, want)
	}
}

func TestBeaconService_BeatCounts(t *testing.T) {
	b := newBeaconService(config.Default(), "")

	for want := uint64(1); want <= 3; want++ {
		if got := b.beat(); got != want {
			t.Errorf("beat() = %d, want %d", got, want)
		}
	}
	if got := b.beatCount(); got != 3 {
		t.Errorf("beatCount() = %d, want 3", got)
	}
}

func TestBeaconService_ReloadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beaconsvc.json")
	if err := os.WriteFile(path, []byte(`{"HeartbeatInterval": "2s"}`), 0644); err != nil {
		t.Fatal(err)
	}

	b := newBeaconService(config.Default(), path)
	b.reload()
	if got, want := b.interval(), 2*time.Second; got != want {
		t.Errorf("interval() after reload = %v, want %v", got, want)
	}

	// a broken file keeps the current configuration
	if err := os.WriteFile(path, []byte(`{"HeartbeatInterval": "soon"}`), 0644); err != nil {
		t.Fatal(err)
	}
	b.reload()
	if got, want := b.interval(), 2*time.Second; got != want {
		t.Errorf("interval() after failed reload = %v, want %v", got, want)
	}
}
