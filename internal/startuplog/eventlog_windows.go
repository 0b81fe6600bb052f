//go:build windows
// +build windows

package startuplog

import (
	"fmt"

	"golang.org/x/sys/windows/svc/eventlog"
)

// Report writes a startup error to the Windows Event Log so that
// "net start" and Event Viewer show the actual error message even when
// the logger has not been initialized yet.
func Report(serviceName string, err error) {
	// Ensure the event source is registered (idempotent if it exists)
	_ = eventlog.InstallAsEventCreate(serviceName, eventlog.Error|eventlog.Warning|eventlog.Info)

	elog, openErr := eventlog.Open(serviceName)
	if openErr != nil {
		return
	}
	defer elog.Close()

	elog.Error(1, fmt.Sprintf("Failed to start: %v", err))
}
