package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryVersions ведёт счётчики изменений в памяти процесса, когда Redis отключён.
type MemoryVersions struct {
	mu       sync.Mutex
	versions map[uuid.UUID]int64
}

func NewMemoryVersions() *MemoryVersions {
	return &MemoryVersions{versions: make(map[uuid.UUID]int64)}
}

func (m *MemoryVersions) Publish(_ context.Context, e Event) error {
	m.mu.Lock()
	m.versions[e.SessionID]++
	m.mu.Unlock()
	return nil
}

func (m *MemoryVersions) Version(_ context.Context, sessionID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[sessionID], nil
}
