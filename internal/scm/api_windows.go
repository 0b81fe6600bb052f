//go:build windows
// +build windows

package scm

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Native is the advapi32-backed API implementation.
var Native API = winAPI{}

type winAPI struct{}

func (winAPI) OpenSCManager(machine, database *string, access uint32) (Token, error) {
	machinePtr, err := optionalUTF16Ptr(machine)
	if err != nil {
		return 0, err
	}
	databasePtr, err := optionalUTF16Ptr(database)
	if err != nil {
		return 0, err
	}
	h, err := windows.OpenSCManager(machinePtr, databasePtr, access)
	if err != nil {
		return 0, err
	}
	return Token(h), nil
}

func (winAPI) CreateService(mgr Token, name, displayName string, access uint32,
	serviceType, startType, errorControl uint32, commandLine string,
	dependencies []uint16, account, password *string) (Token, error) {

	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	displayPtr, err := windows.UTF16PtrFromString(displayName)
	if err != nil {
		return 0, err
	}
	cmdPtr, err := windows.UTF16PtrFromString(commandLine)
	if err != nil {
		return 0, err
	}
	accountPtr, err := optionalUTF16Ptr(account)
	if err != nil {
		return 0, err
	}
	passwordPtr, err := optionalUTF16Ptr(password)
	if err != nil {
		return 0, err
	}

	var depsPtr *uint16
	if len(dependencies) > 0 {
		depsPtr = &dependencies[0]
	}

	h, err := windows.CreateService(
		windows.Handle(mgr),
		namePtr,
		displayPtr,
		access,
		serviceType,
		startType,
		errorControl,
		cmdPtr,
		nil, // load ordering group
		nil, // tag id within the load ordering group
		depsPtr,
		accountPtr,
		passwordPtr,
	)
	if err != nil {
		return 0, err
	}
	return Token(h), nil
}

func (winAPI) OpenService(mgr Token, name string, access uint32) (Token, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	h, err := windows.OpenService(windows.Handle(mgr), namePtr, access)
	if err != nil {
		return 0, err
	}
	return Token(h), nil
}

func (winAPI) ServiceKeyName(mgr Token, displayName string, bufLen uint32) (string, error) {
	displayPtr, err := windows.UTF16PtrFromString(displayName)
	if err != nil {
		return "", err
	}
	buf := make([]uint16, bufLen)
	n := bufLen
	err = windows.GetServiceKeyName(windows.Handle(mgr), displayPtr, &buf[0], &n)
	if err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (winAPI) CloseServiceHandle(tok Token) error {
	return windows.CloseServiceHandle(windows.Handle(tok))
}

func (winAPI) StartService(svc Token, args []string) error {
	var argVectors **uint16
	if len(args) > 0 {
		vectors := make([]*uint16, len(args))
		for i, arg := range args {
			p, err := windows.UTF16PtrFromString(arg)
			if err != nil {
				return err
			}
			vectors[i] = p
		}
		argVectors = &vectors[0]
	}
	return windows.StartService(windows.Handle(svc), uint32(len(args)), argVectors)
}

func (winAPI) ControlService(svc Token, control uint32) (Status, error) {
	var st windows.SERVICE_STATUS
	if err := windows.ControlService(windows.Handle(svc), control, &st); err != nil {
		return Status{}, err
	}
	return statusFromNative(st), nil
}

func (winAPI) QueryServiceStatus(svc Token) (Status, error) {
	var st windows.SERVICE_STATUS
	if err := windows.QueryServiceStatus(windows.Handle(svc), &st); err != nil {
		return Status{}, err
	}
	return statusFromNative(st), nil
}

func (winAPI) DeleteService(svc Token) error {
	return windows.DeleteService(windows.Handle(svc))
}

// serviceDelayedAutoStartInfo mirrors SERVICE_DELAYED_AUTO_START_INFO.
type serviceDelayedAutoStartInfo struct {
	isDelayedAutoStartUp uint32
}

const serviceConfigDelayedAutoStartInfo = 3

func (winAPI) SetDelayedAutoStart(svc Token, delayed bool) error {
	info := serviceDelayedAutoStartInfo{}
	if delayed {
		info.isDelayedAutoStartUp = 1
	}
	return windows.ChangeServiceConfig2(
		windows.Handle(svc),
		serviceConfigDelayedAutoStartInfo,
		(*byte)(unsafe.Pointer(&info)),
	)
}

func statusFromNative(st windows.SERVICE_STATUS) Status {
	return Status{
		ServiceType:     ServiceType(st.ServiceType),
		State:           State(st.CurrentState),
		Accepts:         st.ControlsAccepted,
		Win32ExitCode:   st.Win32ExitCode,
		ServiceExitCode: st.ServiceSpecificExitCode,
		CheckPoint:      st.CheckPoint,
		WaitHint:        st.WaitHint,
	}
}

func optionalUTF16Ptr(s *string) (*uint16, error) {
	if s == nil {
		return nil, nil
	}
	return windows.UTF16PtrFromString(*s)
}
