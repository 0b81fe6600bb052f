package scm

// keyNameBufLen is the receive buffer passed to GetServiceKeyNameW, in
// wide characters. The documented maximum for the call is 4 KiB of
// data, i.e. 2048 wide characters.
const keyNameBufLen = 2048

// Manager is an open session against the service control manager
// database. It owns its session handle and acts as a factory for
// per-service handles, which it does not own after returning them.
//
// Manager operations are each a self-contained native request and are
// safe to call concurrently; the service control manager serializes
// conflicting registry mutations itself.
type Manager struct {
	api    API
	handle *Handle
}

// Connect opens a session against the local service database. An empty
// database name selects the active database.
func Connect(database string, access ManagerAccess) (*Manager, error) {
	return connect(Native, nil, optional(database), access)
}

// ConnectRemote opens a session against the service database on the
// named machine.
func ConnectRemote(machine, database string, access ManagerAccess) (*Manager, error) {
	return connect(Native, &machine, optional(database), access)
}

func connect(api API, machine, database *string, access ManagerAccess) (*Manager, error) {
	tok, err := api.OpenSCManager(machine, database, uint32(access))
	if err != nil {
		return nil, &CallError{Op: "OpenSCManager", Err: err}
	}
	return &Manager{api: api, handle: newHandle(api, tok)}, nil
}

// Disconnect releases the session handle. Handles previously returned
// by CreateService/OpenService stay valid and remain the caller's to
// close.
func (m *Manager) Disconnect() {
	m.handle.Close()
}

// CreateService registers a new service record from the descriptor and
// returns a handle to it opened with the requested access. Optional
// descriptor fields that were not supplied cross the native boundary
// as NULL pointers; load-order group and tag are always omitted.
func (m *Manager) CreateService(info ServiceInfo, access ServiceAccess) (*Service, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	tok, err := m.api.CreateService(
		m.handle.Raw(),
		info.Name,
		info.DisplayName,
		uint32(access),
		uint32(info.ServiceType),
		uint32(info.StartType),
		uint32(info.ErrorControl),
		info.commandLine(),
		info.dependencyBlock(),
		optional(info.AccountName),
		optional(info.AccountPassword),
	)
	if err != nil {
		return nil, &CallError{Op: "CreateService", Err: err}
	}
	svc := newService(m.api, tok)

	if info.StartType == AutoStart && info.DelayedAutoStart {
		if err := m.api.SetDelayedAutoStart(tok, true); err != nil {
			svc.Close()
			return nil, &CallError{Op: "ChangeServiceConfig2", Err: err}
		}
	}
	return svc, nil
}

// OpenService opens an existing service record by its exact name.
// Fails with the manager's not-found status when no such service
// exists (see IsServiceNotFound) or when the session rights do not
// satisfy the request.
func (m *Manager) OpenService(name string, access ServiceAccess) (*Service, error) {
	tok, err := m.api.OpenService(m.handle.Raw(), name, uint32(access))
	if err != nil {
		return nil, &CallError{Op: "OpenService", Err: err}
	}
	return newService(m.api, tok), nil
}

// ServiceNameFromDisplayName resolves a display name to the service
// key name. A name that does not resolve fails with the manager's
// not-found status; a resolved name longer than the fixed receive
// buffer fails rather than truncate.
func (m *Manager) ServiceNameFromDisplayName(displayName string) (string, error) {
	name, err := m.api.ServiceKeyName(m.handle.Raw(), displayName, keyNameBufLen)
	if err != nil {
		return "", &CallError{Op: "GetServiceKeyName", Err: err}
	}
	return name, nil
}

// optional maps "" to nil so absent values become NULL pointers at the
// native boundary instead of empty strings.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
