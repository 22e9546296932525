package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/pkg/jobs"
)

// AsyncSender decouples notification delivery from the request path. Messages
// are enqueued onto a worker pool and the wrapped sender delivers them with
// retries, so a slow downstream never stalls a lifecycle operation.
type AsyncSender struct {
	inner Sender
	queue *jobs.Queue
}

// NewAsyncSender wraps the given sender with a delivery queue.
func NewAsyncSender(inner Sender, workers int, logger *zap.Logger) *AsyncSender {
	s := &AsyncSender{inner: inner}
	s.queue = jobs.NewQueue("notifications", s.deliver, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *AsyncSender) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *AsyncSender) Stop() {
	s.queue.Stop()
}

// Send enqueues the message for delivery. Only enqueue failures surface here;
// delivery failures are retried by the queue.
func (s *AsyncSender) Send(_ context.Context, msg Message) error {
	return s.queue.Enqueue(jobs.Job{
		ID:      msg.RequestID,
		Kind:    string(msg.Kind),
		Payload: msg,
	})
}

func (s *AsyncSender) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(Message)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	return s.inner.Send(ctx, msg)
}
