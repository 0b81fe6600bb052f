// Package scm wraps the Windows service control manager: session and
// service handles, the registry-style create/open/resolve operations,
// and the descriptor encoding used by CreateServiceW.
//
// All native calls cross the API interface so that everything above it
// stays portable and testable. The real binding lives in
// api_windows.go; other platforms get a stub that fails with
// ErrUnsupported.
package scm

import (
	"errors"
	"fmt"
	"syscall"
)

// Token is an opaque SC_HANDLE value issued by the service control
// manager. It is only meaningful to the API implementation that
// produced it.
type Token uintptr

// Status mirrors the SERVICE_STATUS structure reported by the service
// control manager.
type Status struct {
	ServiceType     ServiceType
	State           State
	Accepts         uint32
	Win32ExitCode   uint32
	ServiceExitCode uint32
	CheckPoint      uint32
	WaitHint        uint32
}

// API is the boundary to the native service control manager calls.
// Optional string parameters are pointers: nil crosses the boundary as
// a NULL pointer, never as an empty string.
type API interface {
	// OpenSCManager connects to the service database on machine
	// (nil = local). A nil database selects the active database.
	OpenSCManager(machine, database *string, access uint32) (Token, error)

	// CreateService registers a new service record. commandLine is the
	// fully quoted executable invocation, dependencies the
	// double-NUL-terminated UTF-16 blob (nil when there are none).
	// Load-order group and tag are always passed as NULL/zero.
	CreateService(mgr Token, name, displayName string, access uint32,
		serviceType, startType, errorControl uint32, commandLine string,
		dependencies []uint16, account, password *string) (Token, error)

	// OpenService opens an existing service record by exact name.
	OpenService(mgr Token, name string, access uint32) (Token, error)

	// ServiceKeyName resolves a display name to the service key name
	// using a receive buffer of bufLen wide characters.
	ServiceKeyName(mgr Token, displayName string, bufLen uint32) (string, error)

	// CloseServiceHandle releases a token. Called exactly once per
	// token, during teardown.
	CloseServiceHandle(tok Token) error

	// StartService starts the service, passing args through to its
	// service entry point.
	StartService(svc Token, args []string) error

	// ControlService sends a control code and returns the status the
	// service reported in response.
	ControlService(svc Token, control uint32) (Status, error)

	// QueryServiceStatus returns the current service status.
	QueryServiceStatus(svc Token) (Status, error)

	// DeleteService marks the service record for deletion.
	DeleteService(svc Token) error

	// SetDelayedAutoStart toggles delayed start on an auto-start
	// service record.
	SetDelayedAutoStart(svc Token, delayed bool) error
}

// ErrUnsupported is returned by every native entry point on platforms
// without a service control manager.
var ErrUnsupported = errors.New("service control manager is only available on windows")

// CallError wraps a non-success status from a native service control
// manager call. The underlying status code is preserved and reachable
// through errors.Is / errors.As; translating it into a human message
// is the caller's concern.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("service control manager: %s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Win32 status codes surfaced by the manager operations. Declared as
// syscall.Errno so errors.Is works against both the real advapi32
// binding and the in-package fake.
const (
	errnoServiceDoesNotExist  = syscall.Errno(1060) // ERROR_SERVICE_DOES_NOT_EXIST
	errnoServiceExists        = syscall.Errno(1073) // ERROR_SERVICE_EXISTS
	errnoInsufficientBuffer   = syscall.Errno(122)  // ERROR_INSUFFICIENT_BUFFER
	errnoServiceMarkedDeleted = syscall.Errno(1072) // ERROR_SERVICE_MARKED_FOR_DELETE
)

// IsServiceNotFound reports whether err carries the status the manager
// uses for an unknown service name or an unresolvable display name.
func IsServiceNotFound(err error) bool {
	return errors.Is(err, errnoServiceDoesNotExist)
}

// IsServiceExists reports whether err carries the status for a create
// call that collided with an existing service name.
func IsServiceExists(err error) bool {
	return errors.Is(err, errnoServiceExists)
}

// IsServiceMarkedForDelete reports whether err carries the status for
// an operation on a service that is already marked for deletion. The
// record disappears once every open handle to it is closed.
func IsServiceMarkedForDelete(err error) bool {
	return errors.Is(err, errnoServiceMarkedDeleted)
}
