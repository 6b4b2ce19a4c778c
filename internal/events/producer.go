package events

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	JobMessageKind string = "ecfr.analyzer.events.job"
	defaultTopic   string = "ecfr.analyzer.events"
	defaultSource  string = "ecfr.analyzer.orchestrator"
	closeTimeout          = 5 * time.Second
)

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer is a wrapper around a Writer with the buffer.
// Callers never wait on the writer: events are queued and sent in order by
// a single goroutine.
type EventProducer struct {
	buffer *buffer
	wakeCh chan struct{}
	doneCh chan struct{}
	exitCh chan struct{}
	writer Writer
	topic  string
	source string

	closeOnce sync.Once
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		buffer: newBuffer(),
		wakeCh: make(chan struct{}, 1),
		doneCh: make(chan struct{}),
		exitCh: make(chan struct{}),
		writer: w,
		topic:  defaultTopic,
		source: defaultSource,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

func (ep *EventProducer) Write(ctx context.Context, kind string, body io.Reader) error {
	d, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	ep.buffer.PushBack(&message{
		Kind: kind,
		Data: d,
	})

	// unblock the producer; a pending wake-up is enough
	select {
	case ep.wakeCh <- struct{}{}:
	default:
	}

	return nil
}

// PublishJobEvent queues a job transition event.
func (ep *EventProducer) PublishJobEvent(ctx context.Context, e JobEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return ep.Write(ctx, JobMessageKind, bytes.NewReader(data))
}

// Close sends the queued events and closes the writer.
func (ep *EventProducer) Close() error {
	var err error
	ep.closeOnce.Do(func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()

		g, ctx := errgroup.WithContext(closeCtx)
		g.Go(func() error {
			close(ep.doneCh)
			select {
			case <-ep.exitCh:
			case <-ctx.Done():
				return ctx.Err()
			}
			return ep.writer.Close(ctx)
		})
		if err = g.Wait(); err != nil {
			zap.S().Named("event_producer").Errorf("event producer closed with error: %s", err)
			return
		}

		zap.S().Named("event_producer").Info("event producer closed")
	})
	return err
}

func (ep *EventProducer) run() {
	defer close(ep.exitCh)
	for {
		ep.drain()

		select {
		case <-ep.wakeCh:
		case <-ep.doneCh:
			ep.drain()
			return
		}
	}
}

func (ep *EventProducer) drain() {
	for msg := ep.buffer.Pop(); msg != nil; msg = ep.buffer.Pop() {
		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource(ep.source)
		e.SetType(msg.Kind)
		e.SetTime(time.Now())
		_ = e.SetData(cloudevents.ApplicationJSON, msg.Data)

		if err := ep.writer.Write(context.TODO(), ep.topic, e); err != nil {
			zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "event", e)
		}
	}
}
