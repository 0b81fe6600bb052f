//go:build !windows
// +build !windows

package startuplog

// Report is a no-op on non-Windows platforms.
func Report(serviceName string, err error) {
	// Event Log is a Windows-only concept.
}
