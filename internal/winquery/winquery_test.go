package winquery

import (
	"context"
	"os"
	"testing"
)

func TestProcessUsage_CurrentProcess(t *testing.T) {
	ctx := context.Background()

	usage, err := processUsage(ctx, uint32(os.Getpid()))
	if err != nil {
		t.Fatalf("processUsage failed for own pid: %v", err)
	}
	if usage.PID != int32(os.Getpid()) {
		t.Errorf("PID = %d, want %d", usage.PID, os.Getpid())
	}
	if usage.MemoryRSS == 0 {
		t.Error("MemoryRSS = 0, expected the test process to have resident memory")
	}
	if usage.NumThreads <= 0 {
		t.Errorf("NumThreads = %d, want > 0", usage.NumThreads)
	}
}

func TestProcessUsage_NoProcess(t *testing.T) {
	if _, err := processUsage(context.Background(), 0); err == nil {
		t.Error("expected error for pid 0")
	}
}

func TestWQLString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Spooler", `"Spooler"`},
		{`svc"name`, `"svc\"name"`},
		{`svc\name`, `"svc\\name"`},
		{`a\"b`, `"a\\\"b"`},
	}
	for _, tt := range tests {
		if got := wqlString(tt.in); got != tt.want {
			t.Errorf("wqlString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
