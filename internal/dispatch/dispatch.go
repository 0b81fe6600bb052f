// Package dispatch implements the service bootstrap handshake with the
// service control manager: one blocking registration call that starts
// the control dispatcher, plus the callback-side marshalling of the
// transient startup arguments into owned Go strings.
package dispatch

import (
	"fmt"
	"strings"
	"sync"
)

// ServiceMain is the application entry point for one service. It runs
// on a thread owned by the service control manager, receives the
// already-copied startup arguments (args[0] is the service name), and
// is expected to register a control handler and report status until
// the service stops.
type ServiceMain func(args []string)

// Entry associates one service name with its entry point.
type Entry struct {
	Name string
	Main ServiceMain
}

// ErrAlreadyStarted is returned when Run is called twice in one
// process; the control dispatcher can only be started once.
var ErrAlreadyStarted = fmt.Errorf("service dispatcher already started in this process")

var registry struct {
	mu      sync.Mutex
	started bool
	mains   []Entry
}

// Run registers the table with the service control manager and blocks
// the calling thread until every listed service has stopped. On
// registration failure it returns immediately; no background activity
// has started and the entry points will never be invoked.
//
// The control manager starts each entry point on a thread it owns, at
// a time of its choosing, no earlier than a successful registration.
func Run(entries []Entry) error {
	if err := validate(entries); err != nil {
		return err
	}

	registry.mu.Lock()
	if registry.started {
		registry.mu.Unlock()
		return ErrAlreadyStarted
	}
	registry.started = true
	registry.mains = append([]Entry(nil), entries...)
	registry.mu.Unlock()

	defer func() {
		registry.mu.Lock()
		registry.started = false
		registry.mains = nil
		registry.mu.Unlock()
	}()

	return run(entries)
}

// RunService registers a single service. Most processes host exactly
// one.
func RunService(name string, main ServiceMain) error {
	return Run([]Entry{{Name: name, Main: main}})
}

// validate rejects malformed tables before anything reaches the native
// boundary.
func validate(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("dispatch table has no entries")
	}
	for i, e := range entries {
		if e.Name == "" {
			return fmt.Errorf("dispatch table entry %d has an empty service name", i)
		}
		if strings.ContainsRune(e.Name, 0) {
			return fmt.Errorf("dispatch table entry %q contains an embedded NUL", e.Name)
		}
		if e.Main == nil {
			return fmt.Errorf("dispatch table entry %q has a nil entry point", e.Name)
		}
	}
	return nil
}

// lookupMain finds the entry point for a callback invocation. The
// control manager always passes the service name as args[0]; when the
// table has a single entry that entry is used regardless, since a
// lone-service process cannot be dispatched for anything else.
func lookupMain(args []string) ServiceMain {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if len(registry.mains) == 1 {
		return registry.mains[0].Main
	}
	if len(args) == 0 {
		return nil
	}
	for _, e := range registry.mains {
		if strings.EqualFold(e.Name, args[0]) {
			return e.Main
		}
	}
	return nil
}
