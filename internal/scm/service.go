package scm

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// statePollInterval is how often WaitForState re-queries the service
// status.
const statePollInterval = 300 * time.Millisecond

// Service is an open handle to one service record. It owns its handle;
// the caller must Close it when done.
type Service struct {
	api    API
	handle *Handle
	clk    clock.Clock
}

func newService(api API, tok Token) *Service {
	return &Service{api: api, handle: newHandle(api, tok), clk: clock.New()}
}

// Close releases the service handle. Safe to call more than once; the
// native release is issued exactly once.
func (s *Service) Close() {
	s.handle.Close()
}

// Start asks the service control manager to start the service, passing
// args through to its service entry point.
func (s *Service) Start(args ...string) error {
	if err := s.api.StartService(s.handle.Raw(), args); err != nil {
		return &CallError{Op: "StartService", Err: err}
	}
	return nil
}

// Stop sends the stop control and returns the status the service
// reported in response. The service may still be stop-pending when
// this returns; use WaitForState to wait it out.
func (s *Service) Stop() (Status, error) {
	return s.control("ControlService(stop)", controlStop)
}

// Pause sends the pause control.
func (s *Service) Pause() (Status, error) {
	return s.control("ControlService(pause)", controlPause)
}

// Continue resumes a paused service.
func (s *Service) Continue() (Status, error) {
	return s.control("ControlService(continue)", controlContinue)
}

func (s *Service) control(op string, code uint32) (Status, error) {
	st, err := s.api.ControlService(s.handle.Raw(), code)
	if err != nil {
		return Status{}, &CallError{Op: op, Err: err}
	}
	return st, nil
}

// QueryStatus returns the current service status.
func (s *Service) QueryStatus() (Status, error) {
	st, err := s.api.QueryServiceStatus(s.handle.Raw())
	if err != nil {
		return Status{}, &CallError{Op: "QueryServiceStatus", Err: err}
	}
	return st, nil
}

// Delete marks the service record for deletion. The record disappears
// once every open handle to it is closed and the service is stopped.
func (s *Service) Delete() error {
	if err := s.api.DeleteService(s.handle.Raw()); err != nil {
		return &CallError{Op: "DeleteService", Err: err}
	}
	return nil
}

// WaitForState polls the service status until it reaches want or ctx
// is done. Returns the last observed status.
func (s *Service) WaitForState(ctx context.Context, want State) (Status, error) {
	ticker := s.clk.Ticker(statePollInterval)
	defer ticker.Stop()

	for {
		st, err := s.QueryStatus()
		if err != nil {
			return st, err
		}
		if st.State == want {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-ticker.C:
		}
	}
}
