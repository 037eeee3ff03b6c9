package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is the default Adapter: a process-local mirror of the stores.
// It doubles as the test double for persistence behaviour.
type Memory struct {
	mu      sync.Mutex
	records map[Kind]map[string]json.RawMessage
}

// NewMemory constructs an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{records: map[Kind]map[string]json.RawMessage{
		KindParticipants: {},
		KindCourses:      {},
		KindPrograms:     {},
	}}
}

func (m *Memory) put(kind Kind, key string, record interface{}) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.records[kind]
	if !ok {
		bucket = map[string]json.RawMessage{}
		m.records[kind] = bucket
	}
	bucket[key] = payload
	return nil
}

// Create stores the record payload.
func (m *Memory) Create(_ context.Context, kind Kind, key string, record interface{}) error {
	return m.put(kind, key, record)
}

// Update overwrites the record payload.
func (m *Memory) Update(_ context.Context, kind Kind, key string, record interface{}) error {
	return m.put(kind, key, record)
}

// Delete removes the record payload.
func (m *Memory) Delete(_ context.Context, kind Kind, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if bucket, ok := m.records[kind]; ok {
		delete(bucket, key)
	}
	return nil
}

// Snapshot returns the stored payload for inspection in tests.
func (m *Memory) Snapshot(kind Kind, key string) (json.RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.records[kind]
	if !ok {
		return nil, false
	}
	payload, ok := bucket[key]
	return payload, ok
}

// Len reports how many records a collection holds.
func (m *Memory) Len(kind Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records[kind])
}
