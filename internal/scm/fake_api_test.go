package scm

import (
	"strings"
	"sync"
	"syscall"
)

// fakeAPI simulates the service control manager for tests: it issues
// tokens, keeps a service registry, and counts close calls so handle
// lifecycle invariants can be verified.
type fakeAPI struct {
	mu        sync.Mutex
	nextToken Token
	open      map[Token]string // token -> service name, "" for the database itself
	services  map[string]*fakeRecord

	closeCalls int
	closeErr   error // injected CloseServiceHandle failure

	// last OpenSCManager call, for boundary assertions
	lastMachine  *string
	lastDatabase *string
	lastAccess   uint32
}

// fakeRecord captures everything CreateService passed across the
// boundary for one service.
type fakeRecord struct {
	displayName  string
	access       uint32
	serviceType  uint32
	startType    uint32
	errorControl uint32
	commandLine  string
	dependencies []uint16
	account      *string
	password     *string
	delayed      bool
	state        State
	deleted      bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextToken: 100,
		open:      make(map[Token]string),
		services:  make(map[string]*fakeRecord),
	}
}

func (f *fakeAPI) issue(name string) Token {
	f.nextToken++
	f.open[f.nextToken] = name
	return f.nextToken
}

func (f *fakeAPI) OpenSCManager(machine, database *string, access uint32) (Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMachine = machine
	f.lastDatabase = database
	f.lastAccess = access
	return f.issue(""), nil
}

func (f *fakeAPI) CreateService(mgr Token, name, displayName string, access uint32,
	serviceType, startType, errorControl uint32, commandLine string,
	dependencies []uint16, account, password *string) (Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.open[mgr]; !ok {
		return 0, syscall.Errno(6) // ERROR_INVALID_HANDLE
	}
	if _, ok := f.services[strings.ToLower(name)]; ok {
		return 0, errnoServiceExists
	}
	deps := append([]uint16(nil), dependencies...)
	f.services[strings.ToLower(name)] = &fakeRecord{
		displayName:  displayName,
		access:       access,
		serviceType:  serviceType,
		startType:    startType,
		errorControl: errorControl,
		commandLine:  commandLine,
		dependencies: deps,
		account:      account,
		password:     password,
		state:        Stopped,
	}
	return f.issue(strings.ToLower(name)), nil
}

func (f *fakeAPI) OpenService(mgr Token, name string, access uint32) (Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.open[mgr]; !ok {
		return 0, syscall.Errno(6)
	}
	if _, ok := f.services[strings.ToLower(name)]; !ok {
		return 0, errnoServiceDoesNotExist
	}
	return f.issue(strings.ToLower(name)), nil
}

func (f *fakeAPI) ServiceKeyName(mgr Token, displayName string, bufLen uint32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, rec := range f.services {
		if rec.displayName == displayName {
			// buffer must fit the name plus its terminator
			if uint32(len(name)+1) > bufLen {
				return "", errnoInsufficientBuffer
			}
			return name, nil
		}
	}
	return "", errnoServiceDoesNotExist
}

func (f *fakeAPI) CloseServiceHandle(tok Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	if f.closeErr != nil {
		return f.closeErr
	}
	if _, ok := f.open[tok]; !ok {
		return syscall.Errno(6)
	}
	delete(f.open, tok)
	return nil
}

func (f *fakeAPI) StartService(svc Token, args []string) error {
	rec, err := f.record(svc)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.state = Running
	return nil
}

func (f *fakeAPI) ControlService(svc Token, control uint32) (Status, error) {
	rec, err := f.record(svc)
	if err != nil {
		return Status{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch control {
	case controlStop:
		rec.state = Stopped
	case controlPause:
		rec.state = Paused
	case controlContinue:
		rec.state = Running
	}
	return Status{State: rec.state}, nil
}

func (f *fakeAPI) QueryServiceStatus(svc Token) (Status, error) {
	rec, err := f.record(svc)
	if err != nil {
		return Status{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return Status{State: rec.state}, nil
}

func (f *fakeAPI) DeleteService(svc Token) error {
	rec, err := f.record(svc)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.deleted {
		return errnoServiceMarkedDeleted
	}
	rec.deleted = true
	return nil
}

func (f *fakeAPI) SetDelayedAutoStart(svc Token, delayed bool) error {
	rec, err := f.record(svc)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.delayed = delayed
	return nil
}

func (f *fakeAPI) record(svc Token) (*fakeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.open[svc]
	if !ok || name == "" {
		return nil, syscall.Errno(6)
	}
	return f.services[name], nil
}

func (f *fakeAPI) service(name string) *fakeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.services[strings.ToLower(name)]
}

func (f *fakeAPI) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls
}

func (f *fakeAPI) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.open)
}
