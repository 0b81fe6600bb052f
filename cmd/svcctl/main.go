// Package main is the operator tool for managing services: install,
// uninstall, start, stop, status and display-name resolution against
// the local or a remote service control manager.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"svckit/internal/descriptor"
	"svckit/internal/logger"
	"svckit/internal/scm"
	"svckit/internal/winquery"
)

var version = "dev"

type cli struct {
	Machine  string `short:"m" help:"Remote machine name. Empty manages the local machine."`
	Database string `help:"Service database name. Empty selects the active database."`
	LogLevel string `name:"log-level" default:"warn" enum:"trace,debug,info,warn,error" help:"Diagnostic log level."`

	Install   installCmd   `cmd:"" help:"Install a service from a JSON descriptor."`
	Uninstall uninstallCmd `cmd:"" help:"Mark an installed service for deletion."`
	Start     startCmd     `cmd:"" help:"Start a service."`
	Stop      stopCmd      `cmd:"" help:"Stop a service."`
	Status    statusCmd    `cmd:"" help:"Show the current status of a service."`
	Resolve   resolveCmd   `cmd:"" help:"Resolve a display name to the service key name."`

	Version kong.VersionFlag `help:"Print version and exit."`
}

// session carries the connection flags into the subcommands.
type session struct {
	machine  string
	database string
}

func (s *session) connect(access scm.ManagerAccess) (*scm.Manager, error) {
	if s.machine != "" {
		return scm.ConnectRemote(s.machine, s.database, access)
	}
	return scm.Connect(s.database, access)
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("svcctl"),
		kong.Description("Service control manager operator tool."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := logger.Init(logger.Config{Level: c.LogLevel, Console: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err := kctx.Run(&session{machine: c.Machine, database: c.Database})
	if err != nil {
		fmt.Fprintf(os.Stderr, "svcctl: %v\n", err)
		if scm.IsServiceNotFound(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type installCmd struct {
	Descriptor string `arg:"" type:"existingfile" help:"Path to the JSON service descriptor."`
	Start      bool   `help:"Start the service after installing it."`
}

func (cmd *installCmd) Run(s *session) error {
	info, err := descriptor.Load(cmd.Descriptor)
	if err != nil {
		return err
	}

	mgr, err := s.connect(scm.ManagerConnect | scm.ManagerCreateService)
	if err != nil {
		return err
	}
	defer mgr.Disconnect()

	access := scm.ServiceQueryStatus
	if cmd.Start {
		access |= scm.ServiceStart
	}
	svc, err := mgr.CreateService(info, access)
	if err != nil {
		if scm.IsServiceExists(err) {
			return fmt.Errorf("service %q already exists: %w", info.Name, err)
		}
		return err
	}
	defer svc.Close()

	fmt.Printf("Installed service %q (%s)\n", info.Name, info.DisplayName)

	if cmd.Start {
		if err := svc.Start(); err != nil {
			return err
		}
		fmt.Printf("Started service %q\n", info.Name)
	}
	return nil
}

type uninstallCmd struct {
	Name string `arg:"" help:"Service key name."`
	Stop bool   `help:"Stop the service before marking it for deletion."`
}

func (cmd *uninstallCmd) Run(s *session) error {
	mgr, err := s.connect(scm.ManagerConnect)
	if err != nil {
		return err
	}
	defer mgr.Disconnect()

	access := scm.ServiceDelete | scm.ServiceQueryStatus
	if cmd.Stop {
		access |= scm.ServiceStop
	}
	svc, err := mgr.OpenService(cmd.Name, access)
	if err != nil {
		return err
	}
	defer svc.Close()

	if cmd.Stop {
		if st, err := svc.QueryStatus(); err == nil && st.State != scm.Stopped {
			if _, err := svc.Stop(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := svc.WaitForState(ctx, scm.Stopped); err != nil {
				return fmt.Errorf("waiting for %q to stop: %w", cmd.Name, err)
			}
		}
	}

	if err := svc.Delete(); err != nil {
		if scm.IsServiceMarkedForDelete(err) {
			return fmt.Errorf("service %q is already marked for deletion: %w", cmd.Name, err)
		}
		return err
	}
	fmt.Printf("Service %q marked for deletion\n", cmd.Name)
	return nil
}

type startCmd struct {
	Name string   `arg:"" help:"Service key name."`
	Args []string `arg:"" optional:"" help:"Arguments passed to the service entry point."`
	Wait bool     `help:"Wait until the service reports running."`

	Timeout time.Duration `default:"30s" help:"Wait timeout."`
}

func (cmd *startCmd) Run(s *session) error {
	mgr, err := s.connect(scm.ManagerConnect)
	if err != nil {
		return err
	}
	defer mgr.Disconnect()

	svc, err := mgr.OpenService(cmd.Name, scm.ServiceStart|scm.ServiceQueryStatus)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Start(cmd.Args...); err != nil {
		return err
	}
	if cmd.Wait {
		ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
		defer cancel()
		st, err := svc.WaitForState(ctx, scm.Running)
		if err != nil {
			return fmt.Errorf("service %q stuck in state %s: %w", cmd.Name, st.State, err)
		}
	}
	fmt.Printf("Started service %q\n", cmd.Name)
	return nil
}

type stopCmd struct {
	Name string `arg:"" help:"Service key name."`
	Wait bool   `help:"Wait until the service reports stopped."`

	Timeout time.Duration `default:"30s" help:"Wait timeout."`
}

func (cmd *stopCmd) Run(s *session) error {
	mgr, err := s.connect(scm.ManagerConnect)
	if err != nil {
		return err
	}
	defer mgr.Disconnect()

	svc, err := mgr.OpenService(cmd.Name, scm.ServiceStop|scm.ServiceQueryStatus)
	if err != nil {
		return err
	}
	defer svc.Close()

	st, err := svc.Stop()
	if err != nil {
		return err
	}
	if cmd.Wait && st.State != scm.Stopped {
		ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
		defer cancel()
		if st, err = svc.WaitForState(ctx, scm.Stopped); err != nil {
			return fmt.Errorf("service %q stuck in state %s: %w", cmd.Name, st.State, err)
		}
	}
	fmt.Printf("Service %q is %s\n", cmd.Name, st.State)
	return nil
}

type statusCmd struct {
	Name   string `arg:"" help:"Service key name."`
	Detail bool   `help:"Include WMI record and process usage."`
}

func (cmd *statusCmd) Run(s *session) error {
	mgr, err := s.connect(scm.ManagerConnect)
	if err != nil {
		return err
	}
	defer mgr.Disconnect()

	svc, err := mgr.OpenService(cmd.Name, scm.ServiceQueryStatus)
	if err != nil {
		return err
	}
	defer svc.Close()

	st, err := svc.QueryStatus()
	if err != nil {
		return err
	}
	fmt.Printf("Service:  %s\nState:    %s\n", cmd.Name, st.State)
	if st.Win32ExitCode != 0 {
		fmt.Printf("ExitCode: %d\n", st.Win32ExitCode)
	}

	if !cmd.Detail {
		return nil
	}

	// WMI enrichment is best effort and local only
	if s.machine != "" {
		fmt.Println("Detail is not available for remote machines")
		return nil
	}
	detail, err := winquery.Describe(context.Background(), cmd.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Display:  %s\nStartMode: %s\nAccount:  %s\nPath:     %s\n",
		detail.DisplayName, detail.StartMode, detail.StartName, detail.PathName)
	if detail.Process != nil {
		fmt.Printf("PID:      %d\nCPU:      %.1f%%\nRSS:      %d KiB\nThreads:  %d\n",
			detail.Process.PID,
			detail.Process.CPUPercent,
			detail.Process.MemoryRSS/1024,
			detail.Process.NumThreads)
	}
	return nil
}

type resolveCmd struct {
	DisplayName string `arg:"" help:"Service display name."`
}

func (cmd *resolveCmd) Run(s *session) error {
	mgr, err := s.connect(scm.ManagerConnect)
	if err != nil {
		return err
	}
	defer mgr.Disconnect()

	name, err := mgr.ServiceNameFromDisplayName(cmd.DisplayName)
	if err != nil {
		if scm.IsServiceNotFound(err) {
			return fmt.Errorf("no service has display name %q: %w", cmd.DisplayName, err)
		}
		return err
	}
	fmt.Println(name)
	return nil
}
