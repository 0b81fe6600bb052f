// Package control implements the per-service control-event loop: it
// registers a control handler with the service control manager,
// reports status transitions back to it, and delivers stop / pause /
// continue requests to the application handler.
//
// It is the consumer side of the handle produced by the dispatch
// bootstrap: a ServiceMain entry point calls Serve before doing
// anything long-running.
package control

import (
	"time"

	"svckit/internal/scm"
)

// Control is a control code delivered by the service control manager.
type Control uint32

const (
	Stop        Control = 1
	Pause       Control = 2
	Continue    Control = 3
	Interrogate Control = 4
	Shutdown    Control = 5
	ParamChange Control = 6
	PreShutdown Control = 0x0f
)

func (c Control) String() string {
	switch c {
	case Stop:
		return "stop"
	case Pause:
		return "pause"
	case Continue:
		return "continue"
	case Interrogate:
		return "interrogate"
	case Shutdown:
		return "shutdown"
	case ParamChange:
		return "param-change"
	case PreShutdown:
		return "pre-shutdown"
	}
	return "unknown"
}

// Accepted is the set of controls a service declares it will handle.
type Accepted uint32

const (
	AcceptStop          Accepted = 0x01
	AcceptPauseContinue Accepted = 0x02
	AcceptShutdown      Accepted = 0x04
	AcceptParamChange   Accepted = 0x08
	AcceptPreShutdown   Accepted = 0x100
)

// Status is what the service reports back to the control manager.
type Status struct {
	State           scm.State
	Accepts         Accepted
	Win32ExitCode   uint32
	ServiceExitCode uint32
	CheckPoint      uint32
	WaitHint        time.Duration
}

// Request is one control event delivered to the handler.
// CurrentStatus is the last status the service reported; Interrogate
// handlers echo it back.
type Request struct {
	Cmd           Control
	EventType     uint32
	EventData     uintptr
	CurrentStatus Status
}

// Handler runs the service's control loop. Execute receives the owned
// startup arguments, reads control requests, and writes status
// transitions; it returns when the service has stopped. A final
// stopped status with the returned exit codes is reported by Serve
// after Execute returns.
type Handler interface {
	Execute(args []string, requests <-chan Request, status chan<- Status) (svcSpecific bool, exitCode uint32)
}

// Serve registers the control handler for the named service and runs
// handler.Execute. It must be called from a ServiceMain entry point,
// on the thread the control manager invoked it on.
func Serve(name string, args []string, handler Handler) error {
	return serve(name, args, handler)
}

// errorServiceSpecific is the Win32 exit code signalling that the real
// exit code is in the service-specific field.
const errorServiceSpecific = 1066 // ERROR_SERVICE_SPECIFIC_ERROR

// serviceType reported with every status update.
const serviceType = uint32(scm.OwnProcess)

// nativeStatus renders a Status into the SERVICE_STATUS field layout.
func nativeStatus(st Status) scm.Status {
	return scm.Status{
		ServiceType:     scm.ServiceType(serviceType),
		State:           st.State,
		Accepts:         uint32(st.Accepts),
		Win32ExitCode:   st.Win32ExitCode,
		ServiceExitCode: st.ServiceExitCode,
		CheckPoint:      st.CheckPoint,
		WaitHint:        uint32(st.WaitHint / time.Millisecond),
	}
}

// finalStatus is the stopped status reported after Execute returns.
func finalStatus(svcSpecific bool, exitCode uint32) Status {
	st := Status{State: scm.Stopped}
	if svcSpecific {
		if exitCode != 0 {
			st.Win32ExitCode = errorServiceSpecific
			st.ServiceExitCode = exitCode
		}
	} else {
		st.Win32ExitCode = exitCode
	}
	return st
}
