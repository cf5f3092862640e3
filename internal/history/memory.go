package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swasthyasetu/health-assistant/internal/escalation"
)

// MemoryStore is the in-process fallback used when no database is
// configured. Same interfaces as Store, nothing survives a restart.
type MemoryStore struct {
	mu          sync.Mutex
	turns       []Turn
	escalations []escalation.Record
	nextID      int64
	now         func() time.Time
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the store's time source for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *MemoryStore) SaveConversationTurn(ctx context.Context, userID, inbound, outbound string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{
		ID:        s.nextID,
		UserID:    userID,
		Inbound:   inbound,
		Outbound:  outbound,
		CreatedAt: s.now(),
	})
	s.nextID++
	return nil
}

func (s *MemoryStore) ListTurns(ctx context.Context, userID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Turn{}
	for i := len(s.turns) - 1; i >= 0 && len(out) < limit; i-- {
		if s.turns[i].UserID == userID {
			out = append(out, s.turns[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveEscalation(ctx context.Context, rec escalation.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escalations = append(s.escalations, rec)
	return nil
}

func (s *MemoryStore) GetEscalation(ctx context.Context, id uuid.UUID) (*escalation.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.escalations {
		if s.escalations[i].ID == id {
			rec := s.escalations[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListEscalations(ctx context.Context, limit int) ([]escalation.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []escalation.Record{}
	for i := len(s.escalations) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.escalations[i])
	}
	return out, nil
}

func (s *MemoryStore) CountEscalationsSince(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.escalations {
		if !rec.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) PurgeTurnsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.turns[:0]
	var removed int64
	for _, t := range s.turns {
		if t.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.turns = kept
	return removed, nil
}
