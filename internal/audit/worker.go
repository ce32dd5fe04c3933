package audit

import (
	"context"
	"log/slog"

	dErrors "medialens/pkg/domain-errors"
)

// Queue decouples event producers from store latency. Append enqueues;
// the Worker drains into the backing store. Reads go straight through.
type Queue struct {
	inbox chan Event
	store Store
}

func NewQueue(store Store, buffer int) *Queue {
	if buffer <= 0 {
		buffer = 256
	}
	return &Queue{inbox: make(chan Event, buffer), store: store}
}

func (q *Queue) Append(_ context.Context, event Event) error {
	select {
	case q.inbox <- event:
		return nil
	default:
		return dErrors.New(dErrors.CodeInternal, "audit queue full")
	}
}

func (q *Queue) ListBySubject(ctx context.Context, subject string) ([]Event, error) {
	return q.store.ListBySubject(ctx, subject)
}

// Inbox exposes the receive side for the Worker.
func (q *Queue) Inbox() <-chan Event {
	return q.inbox
}

// Worker consumes audit events from a channel and persists them. A failed
// append is logged and the drain continues; the trail is best-effort, the
// screening decision never blocks on it.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("audit append failed",
					"case_id", event.CaseID, "action", event.Action, "error", err)
			}
		}
	}
}
