package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
)

// Process is a live worker as seen by the orchestrator.
type Process interface {
	// Channel carries commands to the worker and messages back from it.
	Channel() *worker.Channel
	// Wait blocks until the worker has exited and returns its exit code.
	// It must be called once, after the message stream is drained.
	Wait() int
	// Kill terminates the worker without waiting for it to stop.
	Kill() error
}

type Spawner interface {
	Spawn(ctx context.Context, kind model.JobKind) (Process, error)
}

// ProcessSpawner runs each worker as a child process of the current
// binary. The child inherits the environment, so it opens the same
// database as the orchestrator.
type ProcessSpawner struct {
	path string
	args []string
}

func NewProcessSpawner() (*ProcessSpawner, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable: %w", err)
	}
	return &ProcessSpawner{path: path, args: []string{"worker"}}, nil
}

func (p *ProcessSpawner) Spawn(ctx context.Context, kind model.JobKind) (Process, error) {
	cmd := exec.Command(p.path, p.args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start worker for %s: %w", kind, err)
	}

	return &childProcess{cmd: cmd, stdin: stdin, ch: worker.NewChannel(stdout, stdin)}, nil
}

type childProcess struct {
	cmd   *exec.Cmd
	stdin io.Closer
	ch    *worker.Channel
}

func (c *childProcess) Channel() *worker.Channel {
	return c.ch
}

func (c *childProcess) Wait() int {
	_ = c.stdin.Close()
	err := c.cmd.Wait()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (c *childProcess) Kill() error {
	if c.cmd.Process == nil {
		return nil
	}
	return c.cmd.Process.Kill()
}

// RunFunc is a worker body: it reads commands from in, writes messages to
// out and returns an exit code.
type RunFunc func(ctx context.Context, in io.Reader, out io.Writer) int

// InProcessSpawner runs each worker in a goroutine connected through pipes.
// It speaks the same protocol as a child process.
type InProcessSpawner struct {
	run RunFunc
}

func NewInProcessSpawner(run RunFunc) *InProcessSpawner {
	return &InProcessSpawner{run: run}
}

// NewServeSpawner runs worker.Serve with deps in process.
func NewServeSpawner(deps worker.Deps) *InProcessSpawner {
	return NewInProcessSpawner(func(ctx context.Context, in io.Reader, out io.Writer) int {
		return worker.Serve(ctx, in, out, deps)
	})
}

func (s *InProcessSpawner) Spawn(ctx context.Context, kind model.JobKind) (Process, error) {
	cmdR, cmdW := io.Pipe()
	msgR, msgW := io.Pipe()
	runCtx, cancel := context.WithCancel(context.Background())

	p := &goroutineProcess{
		cmdW:   cmdW,
		msgR:   msgR,
		cancel: cancel,
		exited: make(chan int, 1),
		ch:     worker.NewChannel(msgR, cmdW),
	}
	go func() {
		code := s.run(runCtx, cmdR, msgW)
		_ = msgW.Close()
		_ = cmdR.Close()
		p.exited <- code
	}()
	return p, nil
}

type goroutineProcess struct {
	cmdW   *io.PipeWriter
	msgR   *io.PipeReader
	cancel context.CancelFunc
	exited chan int
	ch     *worker.Channel

	killOnce sync.Once
}

func (g *goroutineProcess) Channel() *worker.Channel {
	return g.ch
}

func (g *goroutineProcess) Wait() int {
	_ = g.cmdW.Close()
	code := <-g.exited
	g.cancel()
	return code
}

// Kill cancels the worker context and breaks both pipes. A goroutine cannot
// be terminated, so the body observes the kill at its next write or read.
func (g *goroutineProcess) Kill() error {
	g.killOnce.Do(func() {
		g.cancel()
		_ = g.cmdW.CloseWithError(errKilled)
		_ = g.msgR.CloseWithError(errKilled)
	})
	return nil
}

var errKilled = errors.New("worker killed")
