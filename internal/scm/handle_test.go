package scm

import (
	"syscall"
	"testing"
)

func TestHandle_CloseExactlyOnce(t *testing.T) {
	api := newFakeAPI()
	tok, err := api.OpenSCManager(nil, nil, uint32(ManagerConnect))
	if err != nil {
		t.Fatalf("OpenSCManager failed: %v", err)
	}

	h := newHandle(api, tok)
	h.Close()
	h.Close() // simulates explicit close followed by deferred close

	if got := api.closeCount(); got != 1 {
		t.Errorf("close calls = %d, want 1", got)
	}
	if got := api.openCount(); got != 0 {
		t.Errorf("open tokens after close = %d, want 0", got)
	}
}

func TestHandle_CloseFailureSwallowed(t *testing.T) {
	api := newFakeAPI()
	tok, _ := api.OpenSCManager(nil, nil, uint32(ManagerConnect))
	api.closeErr = syscall.Errno(6)

	h := newHandle(api, tok)
	// Must not panic or propagate; failure during teardown has no
	// actionable recovery.
	h.Close()
	h.Close()

	if got := api.closeCount(); got != 1 {
		t.Errorf("close calls = %d, want 1", got)
	}
}

func TestHandle_RawBorrowsToken(t *testing.T) {
	api := newFakeAPI()
	tok, _ := api.OpenSCManager(nil, nil, uint32(ManagerConnect))

	h := newHandle(api, tok)
	defer h.Close()

	if h.Raw() != tok {
		t.Errorf("Raw() = %v, want %v", h.Raw(), tok)
	}
}
