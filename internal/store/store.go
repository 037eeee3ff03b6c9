// Package store holds the authoritative in-memory collections. Every
// mutation is copy-on-write: the new record is built fully, then swapped in
// under the write lock, so readers never observe a half-updated value.
//
// After a successful in-memory mutation each store pushes the change to the
// persistence adapter. A failing push is logged and counted but never rolls
// the mutation back; the durable mirror is allowed to lag.
package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/persistence"
)

// PersistObserver is notified about every persistence push so the metrics
// layer can count successes and failures.
type PersistObserver func(kind persistence.Kind, action string, err error)

type pusher struct {
	adapter persistence.Adapter
	logger  *zap.Logger
	observe PersistObserver
}

func newPusher(adapter persistence.Adapter, logger *zap.Logger, observe PersistObserver) pusher {
	if adapter == nil {
		adapter = persistence.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return pusher{adapter: adapter, logger: logger, observe: observe}
}

func (p pusher) push(ctx context.Context, action string, kind persistence.Kind, key string, record interface{}) {
	var err error
	switch action {
	case "create":
		err = p.adapter.Create(ctx, kind, key, record)
	case "update":
		err = p.adapter.Update(ctx, kind, key, record)
	case "delete":
		err = p.adapter.Delete(ctx, kind, key)
	}
	if p.observe != nil {
		p.observe(kind, action, err)
	}
	if err != nil {
		p.logger.Warn("persistence push failed, keeping in-memory state",
			zap.String("action", action),
			zap.String("kind", string(kind)),
			zap.String("key", key),
			zap.Error(err))
	}
}
