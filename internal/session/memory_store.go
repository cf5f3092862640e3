package session

import (
	"context"
	"hash/fnv"
	"sync"
)

const shardCount = 16

// MemoryStore keeps sessions in sharded in-process maps. Each shard carries
// its own mutex so concurrent users on different shards never contend.
type MemoryStore struct {
	shards [shardCount]*memoryShard
	now    clock
}

type memoryShard struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{now: defaultClock}
	for i := range s.shards {
		s.shards[i] = &memoryShard{sessions: make(map[string]*Session)}
	}
	return s
}

// WithClock overrides the store's time source for tests.
func (s *MemoryStore) WithClock(now clock) *MemoryStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *MemoryStore) shardFor(userID string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%shardCount]
}

// Update implements Store. The shard mutex serializes all read-modify-write
// cycles for users on the shard.
func (s *MemoryStore) Update(ctx context.Context, userID string, fn func(*Session)) (Session, error) {
	shard := s.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	sess, ok := shard.sessions[userID]
	if !ok {
		sess = newSession(userID, s.now())
		shard.sessions[userID] = sess
	}
	if fn != nil {
		fn(sess)
	}
	return copySession(sess), nil
}

// Peek implements Store.
func (s *MemoryStore) Peek(ctx context.Context, userID string) (Session, bool, error) {
	shard := s.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	sess, ok := shard.sessions[userID]
	if !ok {
		return Session{}, false, nil
	}
	return copySession(sess), true, nil
}

// Snapshot implements Store.
func (s *MemoryStore) Snapshot(ctx context.Context) ([]Session, error) {
	var out []Session
	for _, shard := range s.shards {
		shard.mu.Lock()
		for _, sess := range shard.sessions {
			out = append(out, copySession(sess))
		}
		shard.mu.Unlock()
	}
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	shard := s.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.sessions, userID)
	return nil
}

func copySession(sess *Session) Session {
	cp := *sess
	if len(sess.History) > 0 {
		cp.History = make([]Turn, len(sess.History))
		copy(cp.History, sess.History)
	}
	return cp
}
