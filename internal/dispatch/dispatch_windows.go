//go:build windows
// +build windows

package dispatch

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"svckit/internal/logger"
	"svckit/internal/scm"
)

// The control manager identifies a service entry point by a plain
// function address registered in the dispatch table, so no per-service
// closure state can cross that boundary. One static trampoline serves
// every entry: it copies the transient argument array into owned
// strings first, then routes to the registered ServiceMain by name.
var (
	trampolineOnce sync.Once
	trampoline     uintptr
)

func serviceMainCallback(argc uint32, argv **uint16) uintptr {
	args := parseArgs(argc, argv)

	main := lookupMain(args)
	if main == nil {
		log := logger.WithComponent("dispatch")
		log.Error().Strs("args", args).Msg("No registered entry point for service callback")
		return 0
	}
	main(args)
	return 0
}

// run blocks inside StartServiceCtrlDispatcherW until every registered
// service has stopped. Registration failure returns immediately with
// the wrapped native status; no callback thread was started.
func run(entries []Entry) error {
	trampolineOnce.Do(func() {
		trampoline = syscall.NewCallback(serviceMainCallback)
	})

	table, err := buildTable(entries, trampoline)
	if err != nil {
		return err
	}

	err = windows.StartServiceCtrlDispatcher(
		(*windows.SERVICE_TABLE_ENTRY)(unsafe.Pointer(&table[0])),
	)
	if err != nil {
		return &scm.CallError{Op: "StartServiceCtrlDispatcher", Err: err}
	}
	return nil
}
