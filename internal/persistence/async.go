package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/pkg/config"
	"github.com/noah-isme/academic-records-api/pkg/jobs"
)

type op struct {
	Action string
	Kind   Kind
	Key    string
	Record interface{}
}

// Async decouples the durable push from the request path by routing every
// operation through the background job queue. Enqueue failures and
// exhausted retries are logged by the queue; the in-memory state the
// operation mirrors is already committed and stays committed.
type Async struct {
	next   Adapter
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAsync wraps next with a worker queue sized from cfg.
func NewAsync(next Adapter, cfg config.PersistenceConfig, logger *zap.Logger) *Async {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Async{next: next, logger: logger}
	a.queue = jobs.NewQueue("persistence", a.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return a
}

// Start launches the queue workers.
func (a *Async) Start(ctx context.Context) {
	a.queue.Start(ctx)
}

// Stop drains the queue workers.
func (a *Async) Stop() {
	a.queue.Stop()
}

func (a *Async) handle(ctx context.Context, job jobs.Job) error {
	o, ok := job.Payload.(op)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	switch o.Action {
	case "create":
		return a.next.Create(ctx, o.Kind, o.Key, o.Record)
	case "update":
		return a.next.Update(ctx, o.Kind, o.Key, o.Record)
	case "delete":
		return a.next.Delete(ctx, o.Kind, o.Key)
	default:
		return fmt.Errorf("unknown persistence action %q", o.Action)
	}
}

func (a *Async) enqueue(o op) error {
	err := a.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    fmt.Sprintf("%s:%s", o.Action, o.Kind),
		Payload: o,
	})
	if err != nil {
		a.logger.Warn("persistence enqueue failed",
			zap.String("action", o.Action), zap.String("kind", string(o.Kind)), zap.String("key", o.Key), zap.Error(err))
	}
	return err
}

// Create enqueues a create push.
func (a *Async) Create(_ context.Context, kind Kind, key string, record interface{}) error {
	return a.enqueue(op{Action: "create", Kind: kind, Key: key, Record: record})
}

// Update enqueues an update push.
func (a *Async) Update(_ context.Context, kind Kind, key string, record interface{}) error {
	return a.enqueue(op{Action: "update", Kind: kind, Key: key, Record: record})
}

// Delete enqueues a delete push.
func (a *Async) Delete(_ context.Context, kind Kind, key string) error {
	return a.enqueue(op{Action: "delete", Kind: kind, Key: key})
}
