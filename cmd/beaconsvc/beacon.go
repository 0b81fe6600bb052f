package main

import (
	"context"
	"sync"
	"time"

	"svckit/internal/config"
	"svckit/internal/control"
	"svckit/internal/logger"
	"svckit/internal/scm"
	"svckit/internal/startuplog"
)

// exit codes reported through the service-specific field.
const (
	exitRunFailed   = 1
	exitServeFailed = 2
)

// beaconService emits a heartbeat log line on a configurable interval.
// The interval follows configuration file changes while running.
type beaconService struct {
	mu         sync.Mutex
	cfg        *config.Config
	configPath string
	beats      uint64
}

func newBeaconService(cfg *config.Config, configPath string) *beaconService {
	return &beaconService{cfg: cfg, configPath: configPath}
}

// serviceMain is the dispatcher entry point. Serve does not return
// until Execute finishes and the final status is reported.
func (b *beaconService) serviceMain(args []string) {
	if err := control.Serve(serviceName, args, b); err != nil {
		startuplog.Report(serviceName, err)
		log := logger.WithComponent("beacon")
		log.Error().Err(err).Msg("Control handler registration failed")
	}
}

// Execute implements control.Handler.
func (b *beaconService) Execute(args []string, requests <-chan control.Request, status chan<- control.Status) (bool, uint32) {
	log := logger.WithComponent("beacon")
	log.Info().Strs("args", args).Msg("Service starting")

	status <- control.Status{State: scm.StartPending, CheckPoint: 1, WaitHint: 10 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- b.run(ctx)
	}()

	const accepts = control.AcceptStop | control.AcceptShutdown | control.AcceptParamChange
	running := control.Status{State: scm.Running, Accepts: accepts}
	status <- running

	for {
		select {
		case err := <-runErr:
			if err != nil {
				log.Error().Err(err).Msg("Beacon loop failed")
				return true, exitRunFailed
			}
			return false, 0
		case req := <-requests:
			switch req.Cmd {
			case control.Interrogate:
				status <- req.CurrentStatus
			case control.Stop, control.Shutdown:
				log.Info().Str("control", req.Cmd.String()).Msg("Stop requested")
				status <- control.Status{State: scm.StopPending, CheckPoint: 1, WaitHint: 10 * time.Second}
				cancel()
				if err := <-runErr; err != nil {
					log.Error().Err(err).Msg("Beacon loop failed during shutdown")
					return true, exitRunFailed
				}
				return false, 0
			case control.ParamChange:
				b.reload()
				status <- running
			default:
				log.Warn().Str("control", req.Cmd.String()).Msg("Unexpected control request")
			}
		}
	}
}

// run drives the heartbeat loop until ctx is cancelled. A file watcher
// applies configuration changes without a restart.
func (b *beaconService) run(ctx context.Context) error {
	log := logger.WithComponent("beacon")

	if b.configPath != "" {
		watcher, err := config.NewWatcher(b.configPath, b.apply)
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	timer := time.NewTimer(b.interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Uint64("beats", b.beatCount()).Msg("Beacon loop stopped")
			return nil
		case <-timer.C:
			n := b.beat()
			log.Info().
				Uint64("beat", n).
				Dur("interval", b.interval()).
				Msg("Heartbeat")
			timer.Reset(b.interval())
		}
	}
}

// reload re-reads the configuration file on an explicit parameter
// change control request.
func (b *beaconService) reload() {
	if b.configPath == "" {
		return
	}
	cfg, err := config.Load(b.configPath)
	if err != nil {
		log := logger.WithComponent("beacon")
		log.Error().Err(err).Msg("Reload failed, keeping current configuration")
		return
	}
	b.apply(cfg)
}

func (b *beaconService) apply(cfg *config.Config) {
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	log := logger.WithComponent("beacon")
	log.Info().
		Dur("heartbeat_interval", cfg.HeartbeatInterval).
		Msg("Configuration applied")
}

func (b *beaconService) interval() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg.HeartbeatInterval
}

func (b *beaconService) beat() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beats++
	return b.beats
}

func (b *beaconService) beatCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beats
}
