// Package main is a sample hosted service: it registers with the
// service control dispatcher, reports status through the control
// handler, and logs a heartbeat on a configurable interval with
// hot-reloaded configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"svckit/internal/config"
	"svckit/internal/dispatch"
	"svckit/internal/logger"
	"svckit/internal/startuplog"
)

const serviceName = "beaconsvc"

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to the configuration file")
		interactive = flag.Bool("interactive", false, "Run in the foreground instead of under the service dispatcher")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("beaconsvc %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// When started by the service control manager the working
	// directory is System32; an absolute config path anchors logs and
	// reloads next to the install location.
	if *configPath != "" && filepath.IsAbs(*configPath) {
		if err := os.Chdir(filepath.Dir(*configPath)); err != nil {
			fail(fmt.Errorf("chdir next to config: %w", err))
		}
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}

	if !*interactive {
		logger.SetServiceMode(true)
	}
	if err := logger.Init(cfg.Logging); err != nil {
		fail(err)
	}

	log := logger.WithComponent("main")
	log.Info().
		Str("version", version).
		Str("config", *configPath).
		Bool("interactive", *interactive).
		Msg("Starting beaconsvc")

	svc := newBeaconService(cfg, *configPath)

	if *interactive {
		if err := svc.runInteractive(); err != nil {
			log.Fatal().Err(err).Msg("Service exited with error")
		}
		log.Info().Msg("beaconsvc stopped")
		return
	}

	err := dispatch.RunService(serviceName, svc.serviceMain)
	if err != nil {
		// Registration failed before any callback started. Typical
		// causes: launched from a console rather than the service
		// control manager, or a non-Windows host.
		startuplog.Report(serviceName, err)
		startuplog.WriteErrorFile("log/beaconsvc", err)
		log.Error().Err(err).Msg("Service dispatcher registration failed, use -interactive for console runs")
		os.Exit(1)
	}
	log.Info().Msg("beaconsvc stopped")
}

// fail reports a startup error through every channel that works before
// logging is up, then exits.
func fail(err error) {
	startuplog.Report(serviceName, err)
	startuplog.WriteErrorFile("log/beaconsvc", err)
	fmt.Fprintf(os.Stderr, "beaconsvc: %v\n", err)
	os.Exit(1)
}

// runInteractive runs the beacon loop in the foreground until SIGINT.
func (b *beaconService) runInteractive() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go waitForInterrupt(cancel)
	return b.run(ctx)
}

func waitForInterrupt(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	<-ch
	log := logger.WithComponent("main")
	log.Info().Msg("Interrupt received, shutting down")
	cancel()
}
