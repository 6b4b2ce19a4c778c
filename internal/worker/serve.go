package worker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/archive"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/ecfr"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/llm"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"go.uber.org/zap"
)

// Deps are the collaborators a worker needs. Analyzer, Versions and
// Archive are only required by the job kinds that use them.
type Deps struct {
	Config   *config.Config
	Store    store.Store
	Analyzer llm.Analyzer
	Versions ecfr.VersionsClient
	Archive  archive.Archiver
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// NewJob builds the job for kind.
func NewJob(kind model.JobKind, deps Deps) (Job, error) {
	switch kind {
	case model.JobKindTextMetrics:
		return NewTextMetricsJob(deps), nil
	case model.JobKindAgeDistribution:
		return NewAgeDistributionJob(deps), nil
	case model.JobKindVersionHistory:
		if deps.Versions == nil {
			return nil, fmt.Errorf("%s requires an eCFR client", kind)
		}
		return NewVersionHistoryJob(deps), nil
	case model.JobKindSectionAnalysis:
		if deps.Analyzer == nil {
			return nil, fmt.Errorf("%s requires an LLM analyzer", kind)
		}
		return NewSectionAnalysisJob(deps), nil
	default:
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}
}

// Serve runs one worker session over in/out: it waits for the init
// command, runs the job and returns the exit code. A stop command, or the
// orchestrator closing in, makes the job stop at the next item boundary.
func Serve(ctx context.Context, in io.Reader, out io.Writer, deps Deps) int {
	log := zap.S().Named("worker")
	ch := NewChannel(in, out)

	var init Command
	if err := ch.Receive(&init); err != nil {
		log.Errorw("failed to read init command", "error", err)
		return ExitFatal
	}
	if init.Type != CommandInit {
		_ = ch.Send(Message{Type: MessageError, Error: fmt.Sprintf("expected init command, got %q", init.Type)})
		return ExitFatal
	}

	job, err := NewJob(init.JobKind, deps)
	if err != nil {
		_ = ch.Send(Message{Type: MessageError, Error: err.Error()})
		return ExitFatal
	}

	runner := NewRunner(job, deps.Store.Progress(), ch)
	go func() {
		for {
			var cmd Command
			if err := ch.Receive(&cmd); err != nil {
				runner.RequestStop()
				return
			}
			if cmd.Type == CommandStop {
				log.Infow("stop received", "job_kind", init.JobKind)
				runner.RequestStop()
			}
		}
	}()

	return runner.Run(ctx, init.Restart)
}
