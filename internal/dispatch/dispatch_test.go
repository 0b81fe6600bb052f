package dispatch

import (
	"strings"
	"testing"
)

func TestValidate_RejectsBadTables(t *testing.T) {
	noop := func([]string) {}

	cases := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{"empty table", nil, "no entries"},
		{"zero entries", []Entry{}, "no entries"},
		{"empty name", []Entry{{Name: "", Main: noop}}, "empty service name"},
		{"embedded NUL", []Entry{{Name: "a\x00b", Main: noop}}, "NUL"},
		{"nil main", []Entry{{Name: "svc", Main: nil}}, "nil entry point"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.entries)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_AcceptsWellFormedTable(t *testing.T) {
	noop := func([]string) {}
	entries := []Entry{
		{Name: "svc1", Main: noop},
		{Name: "svc2", Main: noop},
	}
	if err := validate(entries); err != nil {
		t.Errorf("validate failed: %v", err)
	}
}

func TestRun_RejectsBeforeNativeCall(t *testing.T) {
	// construction-time rejection happens on every platform, before
	// anything reaches the control manager
	if err := Run(nil); err == nil {
		t.Error("expected error for empty table")
	}
	if err := RunService("", func([]string) {}); err == nil {
		t.Error("expected error for empty service name")
	}
}

func TestLookupMain_SingleEntryIgnoresName(t *testing.T) {
	called := ""
	registry.mu.Lock()
	registry.mains = []Entry{{Name: "only", Main: func([]string) { called = "only" }}}
	registry.mu.Unlock()
	defer resetRegistry()

	main := lookupMain([]string{"SomethingElse"})
	if main == nil {
		t.Fatal("lookupMain returned nil for a single-entry table")
	}
	main(nil)
	if called != "only" {
		t.Error("single registered entry point was not selected")
	}
}

func TestLookupMain_MatchesCaseInsensitive(t *testing.T) {
	called := ""
	registry.mu.Lock()
	registry.mains = []Entry{
		{Name: "alpha", Main: func([]string) { called = "alpha" }},
		{Name: "beta", Main: func([]string) { called = "beta" }},
	}
	registry.mu.Unlock()
	defer resetRegistry()

	main := lookupMain([]string{"BETA", "-flag"})
	if main == nil {
		t.Fatal("lookupMain returned nil for a registered name")
	}
	main(nil)
	if called != "beta" {
		t.Errorf("dispatched to %q, want beta", called)
	}

	if lookupMain([]string{"gamma"}) != nil {
		t.Error("lookupMain matched an unregistered name")
	}
	if lookupMain(nil) != nil {
		t.Error("lookupMain matched with no arguments and multiple entries")
	}
}

func resetRegistry() {
	registry.mu.Lock()
	registry.mains = nil
	registry.started = false
	registry.mu.Unlock()
}
