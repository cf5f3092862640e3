package session

import (
	"context"
	"time"
)

// Store owns session state and its concurrency control. All read-modify-write
// cycles for a single user are serialized by the implementation; callers never
// hold session pointers across calls.
type Store interface {
	// Update atomically gets-or-creates the session for userID, applies fn,
	// and persists the result. The returned session is a copy safe to read
	// without further synchronization.
	Update(ctx context.Context, userID string, fn func(*Session)) (Session, error)
	// Peek returns a copy of an existing session without mutating it.
	Peek(ctx context.Context, userID string) (Session, bool, error)
	// Snapshot returns copies of all sessions, for stats and the retention
	// sweep.
	Snapshot(ctx context.Context) ([]Session, error)
	// Delete removes a session. Removing a missing session is not an error.
	Delete(ctx context.Context, userID string) error
}

// clock lets tests pin session timestamps.
type clock func() time.Time

func defaultClock() time.Time {
	return time.Now().UTC()
}
