//go:build windows
// +build windows

package control

import (
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"

	"svckit/internal/logger"
	"svckit/internal/scm"
)

// requestBuffer bounds how many undelivered control events may pile up
// before the handler reads them. The control manager's handler thread
// must never block.
const requestBuffer = 16

type server struct {
	requests chan Request

	mu   sync.Mutex
	last Status
}

// active is the server the control handler callback routes to. Like
// the dispatch trampoline, the callback address carries no state, so
// the running service is process-wide.
var active struct {
	mu  sync.Mutex
	srv *server
}

var (
	ctlOnce     sync.Once
	ctlCallback uintptr
)

func ctlHandler(ctl, eventType uint32, eventData, context uintptr) uintptr {
	active.mu.Lock()
	srv := active.srv
	active.mu.Unlock()
	if srv == nil {
		return 0
	}

	srv.mu.Lock()
	last := srv.last
	srv.mu.Unlock()

	req := Request{
		Cmd:           Control(ctl),
		EventType:     eventType,
		EventData:     eventData,
		CurrentStatus: last,
	}
	select {
	case srv.requests <- req:
	default:
		log := logger.WithComponent("control")
		log.Warn().Str("cmd", req.Cmd.String()).Msg("Dropping control request, handler not keeping up")
	}
	return 0
}

func serve(name string, args []string, handler Handler) error {
	srv := &server{requests: make(chan Request, requestBuffer)}

	active.mu.Lock()
	if active.srv != nil {
		active.mu.Unlock()
		return fmt.Errorf("control handler already serving in this process")
	}
	active.srv = srv
	active.mu.Unlock()

	defer func() {
		active.mu.Lock()
		active.srv = nil
		active.mu.Unlock()
	}()

	ctlOnce.Do(func() {
		ctlCallback = syscall.NewCallback(ctlHandler)
	})

	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	statusHandle, err := windows.RegisterServiceCtrlHandlerEx(namePtr, ctlCallback, 0)
	if err != nil {
		return &scm.CallError{Op: "RegisterServiceCtrlHandlerEx", Err: err}
	}
	// The status handle is not owned: the system releases it when the
	// service record leaves the dispatcher, and CloseServiceHandle must
	// not be called on it.

	statusCh := make(chan Status)
	var pump sync.WaitGroup
	pump.Add(1)
	go func() {
		defer pump.Done()
		for st := range statusCh {
			srv.mu.Lock()
			srv.last = st
			srv.mu.Unlock()
			if err := setStatus(statusHandle, st); err != nil {
				log := logger.WithComponent("control")
				log.Error().Err(err).Msg("SetServiceStatus failed")
			}
		}
	}()

	svcSpecific, exitCode := handler.Execute(args, srv.requests, statusCh)

	close(statusCh)
	pump.Wait()

	return setStatus(statusHandle, finalStatus(svcSpecific, exitCode))
}

func setStatus(h windows.Handle, st Status) error {
	native := nativeStatus(st)
	ss := windows.SERVICE_STATUS{
		ServiceType:             uint32(native.ServiceType),
		CurrentState:            uint32(native.State),
		ControlsAccepted:        native.Accepts,
		Win32ExitCode:           native.Win32ExitCode,
		ServiceSpecificExitCode: native.ServiceExitCode,
		CheckPoint:              native.CheckPoint,
		WaitHint:                native.WaitHint,
	}
	if err := windows.SetServiceStatus(h, &ss); err != nil {
		return &scm.CallError{Op: "SetServiceStatus", Err: err}
	}
	return nil
}
