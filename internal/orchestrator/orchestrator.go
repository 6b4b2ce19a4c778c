package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/events"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DefaultStopGrace = time.Second

	storageAttempts = 3
	storageBackoff  = 100 * time.Millisecond
	// bound on waiting for a killed worker to be reaped
	killWait = 10 * time.Second
)

// ThreadStatus is the externally visible projection of a JobRecord.
type ThreadStatus struct {
	JobKind       model.JobKind      `json:"jobKind"`
	Status        model.JobStatus    `json:"status"`
	Progress      model.Progress     `json:"progress"`
	CurrentItem   *model.CurrentItem `json:"currentItem,omitempty"`
	LastStartTime *time.Time         `json:"lastStartTime,omitempty"`
	Error         *string            `json:"error,omitempty"`
	Statistics    model.Statistics   `json:"statistics"`
}

func newThreadStatus(r model.JobRecord) ThreadStatus {
	return ThreadStatus{
		JobKind:       r.JobKind,
		Status:        r.Status,
		Progress:      r.Progress,
		CurrentItem:   r.CurrentItem,
		LastStartTime: r.LastStartTime,
		Error:         r.Error,
		Statistics:    r.Statistics,
	}
}

// handle is the registry entry of a live worker.
type handle struct {
	kind      model.JobKind
	proc      Process
	startedAt time.Time
	done      chan struct{}

	mu       sync.Mutex
	stopping bool
	finished bool
	// last statistics seen, used to derive item metrics
	stats model.Statistics
}

func (h *handle) markStopping() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopping = true
}

// finish records that a terminal message arrived. It returns false if one
// already did.
func (h *handle) finish() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.finished {
		return false
	}
	h.finished = true
	return true
}

func (h *handle) state() (stopping, finished bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopping, h.finished
}

// EventPublisher receives an event for every status transition.
type EventPublisher interface {
	PublishJobEvent(ctx context.Context, e events.JobEvent) error
}

type Option func(*Orchestrator)

func WithStopGrace(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.stopGrace = d
	}
}

func WithResumeOnBoot(resume bool) Option {
	return func(o *Orchestrator) {
		o.resumeOnBoot = resume
	}
}

func WithEventPublisher(p EventPublisher) Option {
	return func(o *Orchestrator) {
		o.events = p
	}
}

// Orchestrator owns the JobRecord transitions and the registry of live
// workers. Operations on the same job kind are serialized; different kinds
// run independently.
type Orchestrator struct {
	progress     store.Progress
	spawner      Spawner
	stopGrace    time.Duration
	resumeOnBoot bool
	now          func() time.Time
	events       EventPublisher
	log          *zap.SugaredLogger

	kindLocks map[model.JobKind]*sync.Mutex

	mu       sync.Mutex
	registry map[model.JobKind]*handle
}

func New(progress store.Progress, spawner Spawner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		progress:  progress,
		spawner:   spawner,
		stopGrace: DefaultStopGrace,
		now:       time.Now,
		log:       zap.S().Named("orchestrator"),
		kindLocks: make(map[model.JobKind]*sync.Mutex, len(model.JobKinds)),
		registry:  make(map[model.JobKind]*handle),
	}
	for _, kind := range model.JobKinds {
		o.kindLocks[kind] = &sync.Mutex{}
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Init ensures a record for every job kind and reconciles records left
// running by a previous orchestrator: they are moved to stopped with their
// checkpoint kept, and started again when resume on boot is enabled.
func (o *Orchestrator) Init(ctx context.Context) error {
	var orphans []model.JobKind
	for _, kind := range model.JobKinds {
		record, err := o.progress.Ensure(ctx, kind)
		if err != nil {
			return fmt.Errorf("failed to ensure job record %s: %w", kind, err)
		}
		if record.Status != model.JobStatusRunning || o.isRegistered(kind) {
			continue
		}
		o.log.Warnw("job was left running by a previous instance", "job_kind", kind)
		record, err = o.apply(ctx, kind,
			store.SetStatus(model.JobStatusStopped),
			store.SetTimestamp(store.LastStopTime, o.now()),
		)
		if err != nil {
			return fmt.Errorf("failed to reconcile job record %s: %w", kind, err)
		}
		o.transitioned(ctx, record)
		orphans = append(orphans, kind)
	}

	if !o.resumeOnBoot {
		return nil
	}
	for _, kind := range orphans {
		if err := o.Start(ctx, kind, false); err != nil {
			o.log.Errorw("failed to resume job", "job_kind", kind, "error", err)
		}
	}
	return nil
}

// Start launches a worker for kind. Unless restart is set, the worker
// resumes from the stored checkpoint.
func (o *Orchestrator) Start(ctx context.Context, kind model.JobKind, restart bool) error {
	lock, err := o.kindLock(kind)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	return o.start(ctx, kind, restart)
}

func (o *Orchestrator) start(ctx context.Context, kind model.JobKind, restart bool) error {
	record, err := o.progress.Ensure(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to load job record %s: %w", kind, err)
	}

	h := o.lookup(kind)
	if record.Status == model.JobStatusRunning {
		if h != nil {
			return NewErrJobAlreadyRunning()
		}
		o.log.Warnw("job marked running without a live worker, starting it again", "job_kind", kind)
	}
	if h != nil {
		o.stop(ctx, h)
	}

	startedAt := o.now()
	patches := []store.Patch{
		store.SetStatus(model.JobStatusRunning),
		store.ClearError(),
		store.SetTimestamp(store.LastStartTime, startedAt),
	}
	if restart {
		patches = append(patches, store.ResetPatches()...)
	} else if record.HasResumeData() {
		o.log.Infow("resuming from checkpoint", "job_kind", kind, "progress", record.Progress.Current, "total", record.Progress.Total)
	}
	record, err = o.apply(ctx, kind, patches...)
	if err != nil {
		return fmt.Errorf("failed to mark %s running: %w", kind, err)
	}
	o.transitioned(ctx, record)

	proc, err := o.spawner.Spawn(ctx, kind)
	if err != nil {
		metrics.IncreaseWorkerSpawnsMetric(string(kind), false)
		o.handleFailure(context.Background(), kind, startedAt, fmt.Sprintf("failed to spawn worker: %s", err))
		return fmt.Errorf("failed to spawn worker for %s: %w", kind, err)
	}
	metrics.IncreaseWorkerSpawnsMetric(string(kind), true)

	h = &handle{
		kind:      kind,
		proc:      proc,
		startedAt: startedAt,
		done:      make(chan struct{}),
		stats:     record.Statistics,
	}
	o.register(h)
	go o.consume(h)

	if err := proc.Channel().Send(worker.Command{Type: worker.CommandInit, JobKind: kind, Restart: restart}); err != nil {
		o.log.Errorw("failed to send init command", "job_kind", kind, "error", err)
		_ = proc.Kill()
		<-h.done
		return fmt.Errorf("failed to initialize worker for %s: %w", kind, err)
	}

	o.log.Infow("job started", "job_kind", kind, "restart", restart)
	return nil
}

// Stop asks the worker for kind to stop and waits for it, killing it after
// the grace period.
func (o *Orchestrator) Stop(ctx context.Context, kind model.JobKind) error {
	lock, err := o.kindLock(kind)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	if h := o.lookup(kind); h != nil {
		o.stop(ctx, h)
		return nil
	}

	record, err := o.progress.Ensure(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to load job record %s: %w", kind, err)
	}
	if record.Status != model.JobStatusRunning {
		return NewErrJobNotRunning()
	}
	// running without a worker: only the record needs fixing
	record, err = o.apply(ctx, kind,
		store.SetStatus(model.JobStatusStopped),
		store.SetTimestamp(store.LastStopTime, o.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to mark %s stopped: %w", kind, err)
	}
	o.transitioned(ctx, record)
	return nil
}

// Restart stops kind if it runs and starts it again from scratch.
func (o *Orchestrator) Restart(ctx context.Context, kind model.JobKind) error {
	lock, err := o.kindLock(kind)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	if h := o.lookup(kind); h != nil {
		o.stop(ctx, h)
	}
	return o.start(ctx, kind, true)
}

// Status returns the projection of every job record.
func (o *Orchestrator) Status(ctx context.Context) ([]ThreadStatus, error) {
	records, err := o.progress.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byKind := make(map[model.JobKind]model.JobRecord, len(records))
	for _, r := range records {
		byKind[r.JobKind] = r
	}
	statuses := make([]ThreadStatus, 0, len(model.JobKinds))
	for _, kind := range model.JobKinds {
		r, ok := byKind[kind]
		if !ok {
			r = model.NewJobRecord(kind)
		}
		statuses = append(statuses, newThreadStatus(r))
	}
	return statuses, nil
}

// StopAll stops every live worker concurrently.
func (o *Orchestrator) StopAll(ctx context.Context) {
	o.mu.Lock()
	kinds := make([]model.JobKind, 0, len(o.registry))
	for kind := range o.registry {
		kinds = append(kinds, kind)
	}
	o.mu.Unlock()

	var wg sync.WaitGroup
	for _, kind := range kinds {
		wg.Add(1)
		go func(kind model.JobKind) {
			defer wg.Done()
			if err := o.Stop(ctx, kind); err != nil {
				var notRunning *ErrJobNotRunning
				if !errors.As(err, &notRunning) {
					o.log.Errorw("failed to stop job", "job_kind", kind, "error", err)
				}
			}
		}(kind)
	}
	wg.Wait()
}

// stop must be called with the kind lock held.
func (o *Orchestrator) stop(ctx context.Context, h *handle) {
	h.markStopping()

	go func() {
		if err := h.proc.Channel().Send(worker.Command{Type: worker.CommandStop}); err != nil {
			o.log.Debugw("failed to send stop command", "job_kind", h.kind, "error", err)
		}
	}()

	grace := time.NewTimer(o.stopGrace)
	defer grace.Stop()
	select {
	case <-h.done:
	case <-grace.C:
		o.log.Warnw("worker did not stop in time, killing it", "job_kind", h.kind, "grace", o.stopGrace)
		if err := h.proc.Kill(); err != nil {
			o.log.Errorw("failed to kill worker", "job_kind", h.kind, "error", err)
		}
		select {
		case <-h.done:
		case <-time.After(killWait):
			o.log.Errorw("killed worker did not exit", "job_kind", h.kind)
		}
	}
	o.unregister(h)

	if _, finished := h.state(); finished {
		// the worker reached a terminal message first, keep that outcome
		return
	}
	ctx = context.WithoutCancel(ctx)
	record, err := o.apply(ctx, h.kind,
		store.SetStatus(model.JobStatusStopped),
		store.SetTimestamp(store.LastStopTime, o.now()),
		store.RunTimePatch{Elapsed: o.now().Sub(h.startedAt)},
	)
	if err != nil {
		o.log.Errorw("failed to mark job stopped", "job_kind", h.kind, "error", err)
		return
	}
	o.transitioned(ctx, record)
	o.log.Infow("job stopped", "job_kind", h.kind)
}

// consume applies the worker's messages in arrival order, then reaps it.
func (o *Orchestrator) consume(h *handle) {
	defer close(h.done)
	ctx := context.Background()
	ch := h.proc.Channel()

	for {
		var msg worker.Message
		if err := ch.Receive(&msg); err != nil {
			if stopping, _ := h.state(); !stopping && !isEOF(err) {
				o.log.Errorw("failed to read worker message", "job_kind", h.kind, "error", err)
				_ = h.proc.Kill()
			}
			break
		}

		switch msg.Type {
		case worker.MessageProgress:
			o.handleProgress(ctx, h, msg)
		case worker.MessageError:
			if h.finish() {
				o.handleFailure(ctx, h.kind, h.startedAt, msg.Error)
			}
		case worker.MessageCompleted:
			if h.finish() {
				o.handleCompletion(ctx, h.kind, h.startedAt, msg.Total, msg.FailedCount)
			}
		default:
			o.log.Warnw("ignoring unknown worker message", "job_kind", h.kind, "type", msg.Type)
		}
	}

	code := h.proc.Wait()
	o.log.Debugw("worker exited", "job_kind", h.kind, "code", code)

	stopping, _ := h.state()
	if !stopping && h.finish() {
		reason := fmt.Sprintf("exit code %d", code)
		if code == worker.ExitOK {
			reason = "worker exited without completing"
		}
		o.handleFailure(ctx, h.kind, h.startedAt, reason)
	}
	if !stopping {
		o.unregister(h)
	}
}

func (o *Orchestrator) handleProgress(ctx context.Context, h *handle, msg worker.Message) {
	patches := msg.Patches()
	if len(patches) == 0 {
		return
	}
	if _, err := o.apply(ctx, h.kind, patches...); err != nil {
		o.log.Errorw("failed to apply progress", "job_kind", h.kind, "error", err)
	}
	if msg.Statistics != nil {
		h.mu.Lock()
		prev := h.stats
		h.stats = *msg.Statistics
		h.mu.Unlock()
		metrics.AddJobItemsMetric(string(h.kind),
			msg.Statistics.ItemsProcessed-prev.ItemsProcessed,
			msg.Statistics.ItemsFailed-prev.ItemsFailed)
	}
}

func (o *Orchestrator) handleCompletion(ctx context.Context, kind model.JobKind, startedAt time.Time, total uint32, failedCount int) {
	now := o.now()
	record, err := o.apply(ctx, kind, store.CompletedPatches(now, now.Sub(startedAt), total, failedCount)...)
	if err != nil {
		o.log.Errorw("failed to mark job completed", "job_kind", kind, "error", err)
		return
	}
	o.transitioned(ctx, record)
	o.log.Infow("job completed", "job_kind", kind, "total", total, "failed", failedCount)
}

// handleFailure keeps the checkpoint so a plain start resumes.
func (o *Orchestrator) handleFailure(ctx context.Context, kind model.JobKind, startedAt time.Time, reason string) {
	now := o.now()
	record, err := o.apply(ctx, kind,
		store.RunTimePatch{Elapsed: now.Sub(startedAt)},
		store.SetStatus(model.JobStatusFailed),
		store.SetError(reason),
		store.SetTimestamp(store.LastStopTime, now),
	)
	if err != nil {
		o.log.Errorw("failed to mark job failed", "job_kind", kind, "error", err)
		return
	}
	o.transitioned(ctx, record)
	o.log.Errorw("job failed", "job_kind", kind, "error", reason)
}

func (o *Orchestrator) apply(ctx context.Context, kind model.JobKind, patches ...store.Patch) (*model.JobRecord, error) {
	var record *model.JobRecord
	err := store.Retry(ctx, storageAttempts, storageBackoff, true, func() error {
		var err error
		record, err = o.progress.Apply(ctx, kind, patches...)
		return err
	})
	return record, err
}

// transitioned records a status change in metrics and publishes it.
func (o *Orchestrator) transitioned(ctx context.Context, record *model.JobRecord) {
	metrics.IncreaseJobTransitionMetric(string(record.JobKind), string(record.Status))
	if o.events == nil {
		return
	}
	e := events.JobEvent{
		JobKind:  record.JobKind,
		Status:   record.Status,
		Progress: record.Progress,
		Time:     o.now(),
	}
	if record.Error != nil {
		e.Error = *record.Error
	}
	if err := o.events.PublishJobEvent(ctx, e); err != nil {
		o.log.Warnw("failed to publish job event", "job_kind", record.JobKind, "error", err)
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.ErrClosedPipe)
}

func (o *Orchestrator) kindLock(kind model.JobKind) (*sync.Mutex, error) {
	lock, ok := o.kindLocks[kind]
	if !ok {
		return nil, NewErrUnknownJobKind(string(kind))
	}
	return lock, nil
}

func (o *Orchestrator) lookup(kind model.JobKind) *handle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.registry[kind]
}

func (o *Orchestrator) isRegistered(kind model.JobKind) bool {
	return o.lookup(kind) != nil
}

func (o *Orchestrator) register(h *handle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.registry[h.kind] = h
}

func (o *Orchestrator) unregister(h *handle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.registry[h.kind] == h {
		delete(o.registry, h.kind)
	}
}
