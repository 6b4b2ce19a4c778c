package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"go.uber.org/zap"
)

const (
	ExitOK    = 0
	ExitFatal = 1
)

// Item is one unit of work. Items are enumerated ordered by TitleNumber,
// then SectionIdentifier.
type Item struct {
	TitleNumber       int
	TitleName         string
	SectionIdentifier string
	DocumentID        string
	Description       string
}

func (i Item) CurrentItem() *model.CurrentItem {
	return &model.CurrentItem{
		TitleNumber: i.TitleNumber,
		TitleName:   i.TitleName,
		Description: i.Description,
	}
}

type Job interface {
	Kind() model.JobKind
	Items(ctx context.Context) ([]Item, error)
	Process(ctx context.Context, item Item) error
	Cursor(item Item) Cursor
}

// Throttled jobs are asked to wait before every item. Wait returns
// ErrStopRequested when stop fires first.
type Throttled interface {
	Wait(ctx context.Context, stop <-chan struct{}) error
}

type Runner struct {
	job      Job
	progress store.Progress
	ch       *Channel
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	stopped  atomic.Bool
	stats    model.Statistics
	cursor   Cursor
	log      *zap.SugaredLogger
}

func NewRunner(job Job, progress store.Progress, ch *Channel) *Runner {
	return &Runner{
		job:      job,
		progress: progress,
		ch:       ch,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		log:      zap.S().Named("worker").With("job_kind", job.Kind()),
	}
}

// RequestStop asks the loop to exit at the next item boundary.
func (r *Runner) RequestStop() {
	r.stopOnce.Do(func() {
		r.stopped.Store(true)
		close(r.stopCh)
	})
}

func (r *Runner) stopRequested() bool {
	return r.stopped.Load()
}

// Run executes the job and returns the process exit code.
func (r *Runner) Run(ctx context.Context, restart bool) (code int) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Errorw("worker panic", "panic", p, "stack", string(debug.Stack()))
			r.fail(fmt.Errorf("panic: %v", p))
			code = ExitFatal
		}
	}()
	if c, ok := r.job.(io.Closer); ok {
		defer c.Close()
	}

	if err := r.run(ctx, restart); err != nil {
		r.log.Errorw("job failed", "error", err)
		r.fail(err)
		return ExitFatal
	}
	return ExitOK
}

func (r *Runner) run(ctx context.Context, restart bool) error {
	kind := r.job.Kind()

	if !restart {
		record, err := r.progress.Load(ctx, kind)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("failed to load job record: %w", err)
		}
		if record != nil {
			r.stats = record.Statistics
			cursor, err := DecodeCursor(kind, record.ResumeData)
			if err != nil {
				r.log.Warnw("ignoring unreadable checkpoint", "error", err)
			}
			r.cursor = cursor
		}
	}

	items, err := r.job.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate work: %w", err)
	}
	total := uint32(len(items))

	start := 0
	if r.cursor != nil {
		for start < len(items) && r.cursor.Covers(items[start]) {
			start++
		}
	}
	r.log.Infow("starting", "total", total, "resume_from", start, "restart", restart)

	if err := r.sendProgress(model.NewProgress(uint32(start), total), nil); err != nil {
		return err
	}

	throttle, _ := r.job.(Throttled)
	current := uint32(start)
	for _, item := range items[start:] {
		if r.stopRequested() {
			return r.flushStop(current, total)
		}
		if throttle != nil {
			if err := throttle.Wait(ctx, r.stopCh); err != nil {
				if errors.Is(err, ErrStopRequested) {
					return r.flushStop(current, total)
				}
				return err
			}
		}

		began := r.now()
		err := r.job.Process(ctx, item)
		if err != nil {
			if IsFatal(err) {
				return err
			}
			r.stats.ItemsFailed++
			r.log.Warnw("item failed", "title", item.TitleNumber, "section", item.SectionIdentifier, "error", err)
		}
		r.recordItem(r.now().Sub(began))

		current++
		r.cursor = r.job.Cursor(item)
		if err := r.sendProgress(model.NewProgress(current, total), item.CurrentItem()); err != nil {
			return err
		}
	}

	r.log.Infow("completed", "total", total, "failed", r.stats.ItemsFailed)
	return r.ch.Send(Message{Type: MessageCompleted, Total: total, FailedCount: r.stats.ItemsFailed})
}

// recordItem folds one item's wall time into the cumulative simple average.
func (r *Runner) recordItem(elapsed time.Duration) {
	n := float64(r.stats.ItemsProcessed)
	ms := float64(elapsed.Microseconds()) / 1000
	r.stats.AverageTimePerItem = (r.stats.AverageTimePerItem*n + ms) / (n + 1)
	r.stats.ItemsProcessed++
}

func (r *Runner) flushStop(current, total uint32) error {
	r.log.Infow("stop requested, exiting", "current", current, "total", total)
	return r.sendProgress(model.NewProgress(current, total), nil)
}

func (r *Runner) sendProgress(p model.Progress, item *model.CurrentItem) error {
	stats := r.stats
	msg := Message{
		Type:        MessageProgress,
		Progress:    &p,
		CurrentItem: item,
		ResumeData:  EncodeCursor(r.cursor),
		Statistics:  &stats,
	}
	if err := r.ch.Send(msg); err != nil {
		return Fatal(fmt.Errorf("failed to send progress: %w", err))
	}
	return nil
}

func (r *Runner) fail(err error) {
	if sendErr := r.ch.Send(Message{Type: MessageError, Error: err.Error()}); sendErr != nil {
		r.log.Errorw("failed to report error", "error", sendErr)
	}
}
