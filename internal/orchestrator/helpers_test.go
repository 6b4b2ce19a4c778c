package orchestrator_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/events"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/llm"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
)

// fakeAnalyzer scores every section and fails every failEvery-th call. The
// onCall hook runs before the result is produced and may block.
type fakeAnalyzer struct {
	mu        sync.Mutex
	calls     int
	failEvery int
	sections  []string
	onCall    func(n int)
}

func (f *fakeAnalyzer) AnalyzeSection(ctx context.Context, doc model.Document) (*llm.SectionResult, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.sections = append(f.sections, doc.SectionIdentifier)
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if f.failEvery > 0 && n%f.failEvery == 0 {
		return nil, context.DeadlineExceeded
	}
	return &llm.SectionResult{
		Summary:                 "summary",
		AntiquatedScore:         40,
		BusinessUnfriendlyScore: 60,
		Model:                   "fake",
	}, nil
}

func (f *fakeAnalyzer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAnalyzer) FirstSection() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sections) == 0 {
		return ""
	}
	return f.sections[0]
}

// countingSpawner counts the workers spawned through it.
type countingSpawner struct {
	orchestrator.Spawner
	spawned atomic.Int32
}

func (c *countingSpawner) Spawn(ctx context.Context, kind model.JobKind) (orchestrator.Process, error) {
	c.spawned.Add(1)
	return c.Spawner.Spawn(ctx, kind)
}

// stopDetector closes seen once a stop command passes through it.
type stopDetector struct {
	once sync.Once
	seen chan struct{}
}

func newStopDetector() *stopDetector {
	return &stopDetector{seen: make(chan struct{})}
}

func (d *stopDetector) Write(p []byte) (int, error) {
	if bytes.Contains(p, []byte(`"type":"stop"`)) {
		d.once.Do(func() { close(d.seen) })
	}
	return len(p), nil
}

// serveWithDetector runs worker.Serve and reports stop commands to d.
func serveWithDetector(deps worker.Deps, d *stopDetector) orchestrator.RunFunc {
	return func(ctx context.Context, in io.Reader, out io.Writer) int {
		return worker.Serve(ctx, io.TeeReader(in, d), out, deps)
	}
}

// scripted builds a worker body that reads init, sends msgs and exits
// with code.
func scripted(code int, msgs ...worker.Message) orchestrator.RunFunc {
	return func(ctx context.Context, in io.Reader, out io.Writer) int {
		ch := worker.NewChannel(in, out)
		var init worker.Command
		if err := ch.Receive(&init); err != nil {
			return worker.ExitFatal
		}
		for _, m := range msgs {
			if err := ch.Send(m); err != nil {
				return worker.ExitFatal
			}
		}
		return code
	}
}

// stubborn sends one progress message and then ignores stop commands until
// it is killed.
func stubborn() orchestrator.RunFunc {
	return func(ctx context.Context, in io.Reader, out io.Writer) int {
		ch := worker.NewChannel(in, out)
		var init worker.Command
		if err := ch.Receive(&init); err != nil {
			return worker.ExitFatal
		}
		p := model.NewProgress(1, 10)
		_ = ch.Send(worker.Message{Type: worker.MessageProgress, Progress: &p})
		go func() {
			var cmd worker.Command
			for ch.Receive(&cmd) == nil {
			}
		}()
		<-ctx.Done()
		return 137
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.JobEvent
}

func (p *recordingPublisher) PublishJobEvent(_ context.Context, e events.JobEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Statuses() []model.JobStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	statuses := make([]model.JobStatus, 0, len(p.events))
	for _, e := range p.events {
		statuses = append(statuses, e.Status)
	}
	return statuses
}

func (p *recordingPublisher) Last() events.JobEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}
