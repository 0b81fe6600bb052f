package scm

// Access masks are opaque capability requests passed straight through
// to the service control manager; no bit is interpreted locally.
// Values per the SCM access-mask documentation.

// ManagerAccess is the access mask requested when connecting to the
// service database.
type ManagerAccess uint32

const (
	ManagerConnect          ManagerAccess = 0x0001
	ManagerCreateService    ManagerAccess = 0x0002
	ManagerEnumerateService ManagerAccess = 0x0004
	ManagerLock             ManagerAccess = 0x0008
	ManagerQueryLockStatus  ManagerAccess = 0x0010
	ManagerAllAccess        ManagerAccess = 0xF003F
)

// ServiceAccess is the access mask requested for an individual service
// handle.
type ServiceAccess uint32

const (
	ServiceQueryConfig         ServiceAccess = 0x0001
	ServiceChangeConfig        ServiceAccess = 0x0002
	ServiceQueryStatus         ServiceAccess = 0x0004
	ServiceEnumerateDependents ServiceAccess = 0x0008
	ServiceStart               ServiceAccess = 0x0010
	ServiceStop                ServiceAccess = 0x0020
	ServicePauseContinue       ServiceAccess = 0x0040
	ServiceInterrogate         ServiceAccess = 0x0080
	ServiceUserDefinedControl  ServiceAccess = 0x0100
	ServiceDelete              ServiceAccess = 0x10000 // standard DELETE right
	ServiceAllAccess           ServiceAccess = 0xF01FF
)

// ServiceType describes how the service process is hosted.
type ServiceType uint32

const (
	KernelDriver       ServiceType = 0x0001
	FileSystemDriver   ServiceType = 0x0002
	OwnProcess         ServiceType = 0x0010
	ShareProcess       ServiceType = 0x0020
	InteractiveProcess ServiceType = 0x0100
)

// StartType is the service start policy.
type StartType uint32

const (
	BootStart   StartType = 0
	SystemStart StartType = 1
	AutoStart   StartType = 2
	DemandStart StartType = 3
	Disabled    StartType = 4
)

// ErrorControl is the failure-severity policy applied by the system
// when the service fails to start during boot.
type ErrorControl uint32

const (
	ErrorIgnore   ErrorControl = 0
	ErrorNormal   ErrorControl = 1
	ErrorSevere   ErrorControl = 2
	ErrorCritical ErrorControl = 3
)

// State is the service run state reported in Status.
type State uint32

const (
	Stopped         State = 1
	StartPending    State = 2
	StopPending     State = 3
	Running         State = 4
	ContinuePending State = 5
	PausePending    State = 6
	Paused          State = 7
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case StartPending:
		return "start-pending"
	case StopPending:
		return "stop-pending"
	case Running:
		return "running"
	case ContinuePending:
		return "continue-pending"
	case PausePending:
		return "pause-pending"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Control codes accepted by ControlService.
const (
	controlStop     = 1
	controlPause    = 2
	controlContinue = 3
)
