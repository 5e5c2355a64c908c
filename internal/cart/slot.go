package cart

import (
	"context"
	"sync"
)

// Slot is the single persisted key-value entry holding one serialized cart.
// Writes overwrite unconditionally; concurrent writers from other processes win by arriving last.
type Slot interface {
	Load(ctx context.Context) (payload string, found bool, err error)
	Save(ctx context.Context, payload string) error
	Clear(ctx context.Context) error
}

// SlotFactory binds a slot to a browsing session.
type SlotFactory interface {
	Slot(sessionID string) Slot
}

// MemorySlots keeps every session's payload in process memory.
type MemorySlots struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{data: make(map[string]string)}
}

func (m *MemorySlots) Slot(sessionID string) Slot {
	return &memorySlot{owner: m, key: sessionID}
}

// Put seeds a raw payload, bypassing the codec.
func (m *MemorySlots) Put(sessionID, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = payload
}

// Raw returns the stored payload for a session.
func (m *MemorySlots) Raw(sessionID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[sessionID]
	return payload, ok
}

type memorySlot struct {
	owner *MemorySlots
	key   string
}

func (s *memorySlot) Load(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	payload, ok := s.owner.Raw(s.key)
	return payload, ok, nil
}

func (s *memorySlot) Save(ctx context.Context, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.owner.Put(s.key, payload)
	return nil
}

func (s *memorySlot) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	delete(s.owner.data, s.key)
	return nil
}
