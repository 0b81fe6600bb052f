//go:build !windows
// +build !windows

package scm

// Native fails every call with ErrUnsupported on platforms without a
// service control manager. Portable callers still compile and get a
// uniform error at runtime.
var Native API = unsupportedAPI{}

type unsupportedAPI struct{}

func (unsupportedAPI) OpenSCManager(machine, database *string, access uint32) (Token, error) {
	return 0, ErrUnsupported
}

func (unsupportedAPI) CreateService(mgr Token, name, displayName string, access uint32,
	serviceType, startType, errorControl uint32, commandLine string,
	dependencies []uint16, account, password *string) (Token, error) {
	return 0, ErrUnsupported
}

func (unsupportedAPI) OpenService(mgr Token, name string, access uint32) (Token, error) {
	return 0, ErrUnsupported
}

func (unsupportedAPI) ServiceKeyName(mgr Token, displayName string, bufLen uint32) (string, error) {
	return "", ErrUnsupported
}

func (unsupportedAPI) CloseServiceHandle(tok Token) error {
	return ErrUnsupported
}

func (unsupportedAPI) StartService(svc Token, args []string) error {
	return ErrUnsupported
}

func (unsupportedAPI) ControlService(svc Token, control uint32) (Status, error) {
	return Status{}, ErrUnsupported
}

func (unsupportedAPI) QueryServiceStatus(svc Token) (Status, error) {
	return Status{}, ErrUnsupported
}

func (unsupportedAPI) DeleteService(svc Token) error {
	return ErrUnsupported
}

func (unsupportedAPI) SetDelayedAutoStart(svc Token, delayed bool) error {
	return ErrUnsupported
}
