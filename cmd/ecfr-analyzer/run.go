package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/ecfr-analyzer/ecfr-analyzer/internal/api_server"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/events"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/log"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/metrics"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the eCFR analyzer api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := loadConfig(log.InitLog)
		if err != nil {
			return err
		}
		defer done()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")
		zap.S().Infof("Using config: %s", cfg)

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(context.Background()); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}
		if err := migrations.MigrateStore(db, cfg); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		spawner, err := newSpawner(cfg, s)
		if err != nil {
			zap.S().Fatalw("creating worker spawner", "error", err)
		}

		eventProducer := events.NewEventProducer(&events.StdoutWriter{}, events.WithSource(cfg.Service.Name))
		defer eventProducer.Close()

		orch := orchestrator.New(s.Progress(), spawner,
			orchestrator.WithStopGrace(cfg.Worker.StopGrace),
			orchestrator.WithResumeOnBoot(cfg.Worker.ResumeOnBoot),
			orchestrator.WithEventPublisher(eventProducer),
		)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		if err := orch.Init(ctx); err != nil {
			zap.S().Fatalw("initializing orchestrator", "error", err)
		}
		defer orch.StopAll(context.Background())

		if err := metrics.RegisterJobCollector(s.Progress()); err != nil {
			zap.S().Warnw("failed to register job collector", "error", err)
		}

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, s, listener, orch)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("failed to run metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		zap.S().Info("Stopping running jobs")
		return nil
	},
}

// newSpawner returns the child process spawner, or an in-process one when
// WORKER_IN_PROCESS is set.
func newSpawner(cfg *config.Config, s store.Store) (orchestrator.Spawner, error) {
	if cfg.Worker.InProcess {
		deps, err := newWorkerDeps(cfg, s)
		if err != nil {
			return nil, err
		}
		return orchestrator.NewServeSpawner(deps), nil
	}
	return orchestrator.NewProcessSpawner()
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
