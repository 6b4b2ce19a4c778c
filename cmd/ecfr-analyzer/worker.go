package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// workerCmd is spawned by the run command, one process per job. It speaks
// JSON lines on stdin/stdout and logs to stderr.
var workerCmd = &cobra.Command{
	Use:    "worker",
	Short:  "Run one analysis job (spawned by run)",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runWorker())
	},
}

func runWorker() int {
	cfg, done, err := loadConfig(log.InitWorkerLog)
	if err != nil {
		zap.S().Errorw("reading configuration", "error", err)
		return worker.ExitFatal
	}
	defer done()

	// terminal signals reach the whole process group; the parent decides
	// when this worker stops.
	signal.Ignore(syscall.SIGINT, syscall.SIGHUP, syscall.SIGQUIT)

	db, err := store.InitDB(cfg)
	if err != nil {
		zap.S().Errorw("initializing data store", "error", err)
		return worker.ExitFatal
	}
	s := store.NewStore(db)
	defer s.Close()

	deps, err := newWorkerDeps(cfg, s)
	if err != nil {
		zap.S().Errorw("initializing worker", "error", err)
		return worker.ExitFatal
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	return worker.Serve(ctx, os.Stdin, os.Stdout, deps)
}
