package persistence

import "context"

// Kind names the entity collections the durable backend mirrors.
type Kind string

const (
	KindParticipants Kind = "participants"
	KindCourses      Kind = "courses"
	KindPrograms     Kind = "programs"
)

// Adapter is the durable-storage port. Stores call it after their in-memory
// mutation has been applied; a failing call is surfaced and counted but the
// in-memory state is kept. That optimistic gap is documented behaviour, not
// a bug to patch here.
type Adapter interface {
	Create(ctx context.Context, kind Kind, key string, record interface{}) error
	Update(ctx context.Context, kind Kind, key string, record interface{}) error
	Delete(ctx context.Context, kind Kind, key string) error
}

// Noop discards every operation. Used when no durable backend is wanted.
type Noop struct{}

func (Noop) Create(context.Context, Kind, string, interface{}) error { return nil }
func (Noop) Update(context.Context, Kind, string, interface{}) error { return nil }
func (Noop) Delete(context.Context, Kind, string) error              { return nil }
