// Package history persists conversation turns and escalation records in
// Postgres so responders and administrators can review what was said.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swasthyasetu/health-assistant/internal/escalation"
)

// Turn is one inbound/outbound exchange as persisted.
type Turn struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Inbound   string    `json:"inbound"`
	Outbound  string    `json:"outbound"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the Postgres-backed archive. It implements the engine's TurnStore
// and the escalation composer's RecordStore.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		panic("history: db handle cannot be nil")
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the store's time source for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// SaveConversationTurn appends one exchange to the archive.
func (s *Store) SaveConversationTurn(ctx context.Context, userID, inbound, outbound string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversation_turns (user_id, inbound, outbound, created_at)
		VALUES ($1, $2, $3, $4)`,
		userID, inbound, outbound, s.now())
	if err != nil {
		return fmt.Errorf("history: save conversation turn: %w", err)
	}
	return nil
}

// ListTurns returns the most recent turns for a user, newest first.
func (s *Store) ListTurns(ctx context.Context, userID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, inbound, outbound, created_at
		FROM conversation_turns WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list turns: %w", err)
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Inbound, &t.Outbound, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan turn: %w", err)
		}
		out = append(out, t)
	}
	if out == nil {
		out = []Turn{}
	}
	return out, rows.Err()
}

// SaveEscalation persists one emergency escalation record.
func (s *Store) SaveEscalation(ctx context.Context, rec escalation.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO escalations (id, user_id, symptoms_text, responder_name, responder_phone,
		    escalation_type, priority, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.SymptomsText, rec.ResponderName, rec.ResponderPhone,
		rec.EscalationType, rec.Priority, rec.Status, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("history: save escalation: %w", err)
	}
	return nil
}

// GetEscalation fetches one record by id. Returns nil when not found.
func (s *Store) GetEscalation(ctx context.Context, id uuid.UUID) (*escalation.Record, error) {
	var rec escalation.Record
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, symptoms_text, responder_name, responder_phone,
		       escalation_type, priority, status, created_at
		FROM escalations WHERE id = $1`, id).Scan(
		&rec.ID, &rec.UserID, &rec.SymptomsText, &rec.ResponderName, &rec.ResponderPhone,
		&rec.EscalationType, &rec.Priority, &rec.Status, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: get escalation: %w", err)
	}
	return &rec, nil
}

// ListEscalations returns recent escalations, newest first.
func (s *Store) ListEscalations(ctx context.Context, limit int) ([]escalation.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, symptoms_text, responder_name, responder_phone,
		       escalation_type, priority, status, created_at
		FROM escalations ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list escalations: %w", err)
	}
	defer rows.Close()

	var out []escalation.Record
	for rows.Next() {
		var rec escalation.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SymptomsText, &rec.ResponderName,
			&rec.ResponderPhone, &rec.EscalationType, &rec.Priority, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan escalation: %w", err)
		}
		out = append(out, rec)
	}
	if out == nil {
		out = []escalation.Record{}
	}
	return out, rows.Err()
}

// CountEscalationsSince reports how many escalations were created at or
// after cutoff.
func (s *Store) CountEscalationsSince(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM escalations WHERE created_at >= $1`, cutoff).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("history: count escalations: %w", err)
	}
	return n, nil
}

// PurgeTurnsBefore deletes archived turns older than cutoff and reports how
// many rows were removed. Mirrors the session retention sweep.
func (s *Store) PurgeTurnsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM conversation_turns WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: purge turns: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("history: purge turns rows affected: %w", err)
	}
	return n, nil
}
