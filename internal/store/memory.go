package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openroom/chat-api/internal/room"
)

// MemoryParticipants is an in-process participant store used by tests. It
// mirrors the mongo store's contract, including nil results for missing
// records. Setting Err makes every operation fail with it.
type MemoryParticipants struct {
	mu    sync.RWMutex
	items []room.Participant

	Err error
}

// NewMemoryParticipants creates an empty in-memory participant store.
func NewMemoryParticipants() *MemoryParticipants {
	return &MemoryParticipants{}
}

// List returns a copy of all participants in insertion order.
func (s *MemoryParticipants) List(ctx context.Context) ([]room.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]room.Participant, len(s.items))
	copy(out, s.items)
	return out, nil
}

// FindByName returns the first participant with the exact given name, or nil.
func (s *MemoryParticipants) FindByName(ctx context.Context, name string) (*room.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.items {
		if p.Name == name {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// Insert appends a participant.
func (s *MemoryParticipants) Insert(ctx context.Context, p room.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.items = append(s.items, p)
	return nil
}

// SetLastStatus rewrites the heartbeat timestamp of the named participant.
func (s *MemoryParticipants) SetLastStatus(ctx context.Context, name string, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.items {
		if s.items[i].Name == name {
			s.items[i].LastStatus = ts
		}
	}
	return nil
}

// DeleteByName removes every participant with the given name.
func (s *MemoryParticipants) DeleteByName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	kept := s.items[:0]
	for _, p := range s.items {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return nil
}

// MemoryMessages is an in-process message store used by tests. Ids are
// assigned with uuid instead of ObjectID hex; the rest of the system only
// treats them as opaque strings.
type MemoryMessages struct {
	mu    sync.RWMutex
	items []room.Message

	Err error
}

// NewMemoryMessages creates an empty in-memory message store.
func NewMemoryMessages() *MemoryMessages {
	return &MemoryMessages{}
}

// List returns a copy of all messages in insertion order.
func (s *MemoryMessages) List(ctx context.Context) ([]room.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]room.Message, len(s.items))
	copy(out, s.items)
	return out, nil
}

// FindByID returns the message with the given id, or nil when absent.
func (s *MemoryMessages) FindByID(ctx context.Context, id string) (*room.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, m := range s.items {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

// Insert stores a message and returns the assigned id.
func (s *MemoryMessages) Insert(ctx context.Context, m room.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	m.ID = uuid.NewString()
	s.items = append(s.items, m)
	return m.ID, nil
}

// Delete removes the message with the given id.
func (s *MemoryMessages) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	kept := s.items[:0]
	for _, m := range s.items {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.items = kept
	return nil
}
