package control

import (
	"testing"
	"time"

	"svckit/internal/scm"
)

func TestNativeStatus_FieldMapping(t *testing.T) {
	st := Status{
		State:      scm.Running,
		Accepts:    AcceptStop | AcceptShutdown,
		CheckPoint: 3,
		WaitHint:   2500 * time.Millisecond,
	}
	native := nativeStatus(st)

	if native.ServiceType != scm.OwnProcess {
		t.Errorf("ServiceType = %#x, want own-process", uint32(native.ServiceType))
	}
	if native.State != scm.Running {
		t.Errorf("State = %v, want running", native.State)
	}
	if native.Accepts != uint32(AcceptStop|AcceptShutdown) {
		t.Errorf("Accepts = %#x, want %#x", native.Accepts, uint32(AcceptStop|AcceptShutdown))
	}
	if native.WaitHint != 2500 {
		t.Errorf("WaitHint = %d ms, want 2500", native.WaitHint)
	}
	if native.CheckPoint != 3 {
		t.Errorf("CheckPoint = %d, want 3", native.CheckPoint)
	}
}

func TestFinalStatus_ExitCodes(t *testing.T) {
	cases := []struct {
		name        string
		svcSpecific bool
		exitCode    uint32
		wantWin32   uint32
		wantService uint32
	}{
		{"clean stop", false, 0, 0, 0},
		{"win32 failure", false, 5, 5, 0},
		{"service specific", true, 7, errorServiceSpecific, 7},
		{"service specific zero is clean", true, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := finalStatus(tc.svcSpecific, tc.exitCode)
			if st.State != scm.Stopped {
				t.Errorf("State = %v, want stopped", st.State)
			}
			if st.Win32ExitCode != tc.wantWin32 {
				t.Errorf("Win32ExitCode = %d, want %d", st.Win32ExitCode, tc.wantWin32)
			}
			if st.ServiceExitCode != tc.wantService {
				t.Errorf("ServiceExitCode = %d, want %d", st.ServiceExitCode, tc.wantService)
			}
		})
	}
}

func TestControl_String(t *testing.T) {
	if Stop.String() != "stop" {
		t.Errorf("Stop.String() = %q", Stop.String())
	}
	if Control(99).String() != "unknown" {
		t.Errorf("unknown control String() = %q", Control(99).String())
	}
}
