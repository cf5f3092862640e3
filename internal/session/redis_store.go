package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisStore persists sessions in Redis with a TTL equal to the retention
// window, so idle sessions expire without an explicit sweep. Read-modify-write
// cycles are serialized per key inside the process; the deployment runs a
// single writer per user identity.
type RedisStore struct {
	redis  *redis.Client
	tracer trace.Tracer
	ttl    time.Duration
	now    clock

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock serializes read-modify-write cycles for one user. Entries are
// reference counted and removed from the map on release, so the map stays
// bounded by in-flight requests rather than by distinct users seen.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewRedisStore creates a Redis-backed store. ttl bounds session retention.
func NewRedisStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("swasthya.internal.session")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{
		redis:  client,
		tracer: tracer,
		ttl:    ttl,
		now:    defaultClock,
		locks:  make(map[string]*userLock),
	}
}

// WithClock overrides the store's time source for tests.
func (s *RedisStore) WithClock(now clock) *RedisStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *RedisStore) acquire(userID string) *userLock {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *RedisStore) release(userID string, l *userLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
	s.mu.Unlock()
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

// Update implements Store.
func (s *RedisStore) Update(ctx context.Context, userID string, fn func(*Session)) (Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.update")
	defer span.End()

	l := s.acquire(userID)
	defer s.release(userID, l)

	sess, ok, err := s.load(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return Session{}, err
	}
	if !ok {
		sess = newSession(userID, s.now())
	}
	if fn != nil {
		fn(sess)
	}
	if err := s.save(ctx, sess); err != nil {
		span.RecordError(err)
		return Session{}, err
	}
	return copySession(sess), nil
}

// Peek implements Store.
func (s *RedisStore) Peek(ctx context.Context, userID string) (Session, bool, error) {
	ctx, span := s.tracer.Start(ctx, "session.peek")
	defer span.End()

	sess, ok, err := s.load(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return Session{}, false, err
	}
	if !ok {
		return Session{}, false, nil
	}
	return copySession(sess), true, nil
}

// Snapshot implements Store. It scans the session keyspace; the stats and
// sweep callers tolerate the non-atomic view.
func (s *RedisStore) Snapshot(ctx context.Context) ([]Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.snapshot")
	defer span.End()

	var out []Session
	iter := s.redis.Scan(ctx, 0, "session:*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			span.RecordError(err)
			return nil, fmt.Errorf("session: failed to load %s: %w", iter.Val(), err)
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("session: failed to decode %s: %w", iter.Val(), err)
		}
		out = append(out, sess)
	}
	if err := iter.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: scan failed: %w", err)
	}
	return out, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "session.delete")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to delete %s: %w", userID, err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, userID string) (*Session, bool, error) {
	data, err := s.redis.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("session: failed to load %s: %w", userID, err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false, fmt.Errorf("session: failed to decode %s: %w", userID, err)
	}
	return &sess, true, nil
}

func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: failed to marshal %s: %w", sess.UserID, err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: failed to persist %s: %w", sess.UserID, err)
	}
	return nil
}
