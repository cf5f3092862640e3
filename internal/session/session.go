package session

import (
	"time"

	"github.com/swasthyasetu/health-assistant/internal/language"
)

// State is the onboarding phase of a session.
type State string

const (
	// StateNew is the pre-contact state; first contact immediately advances
	// to StateAwaitingLanguage.
	StateNew State = "new"
	// StateAwaitingLanguage means the user has been shown the language menu
	// and has not picked yet.
	StateAwaitingLanguage State = "awaiting_language_selection"
	// StateActive means the user has chosen a language and queries flow to
	// the symptom pipeline.
	StateActive State = "active"
)

const (
	// historyLimit bounds the rolling conversation history per session.
	historyLimit = 10
	// responseTruncateAt caps the stored copy of an outbound response.
	responseTruncateAt = 100
)

// Turn is one recorded exchange in a session's rolling history.
type Turn struct {
	Timestamp time.Time `json:"timestamp"`
	Inbound   string    `json:"inbound"`
	Response  string    `json:"response"`
}

// Session is per-user conversational state tracked across messages.
type Session struct {
	UserID           string            `json:"user_id"`
	State            State             `json:"state"`
	Language         language.Language `json:"language"`
	Onboarded        bool              `json:"onboarded"`
	CreatedAt        time.Time         `json:"created_at"`
	LastActivityAt   time.Time         `json:"last_activity_at"`
	History          []Turn            `json:"history,omitempty"`
	TotalQueries     int               `json:"total_queries"`
	EmergencyQueries int               `json:"emergency_queries"`
}

// newSession creates the state for a first contact. The NEW state is never
// observable from outside the store: creation advances straight to the
// language menu.
func newSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:         userID,
		State:          StateAwaitingLanguage,
		Language:       language.Unknown,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Touch records inbound activity. Called exactly once per inbound message.
func (s *Session) Touch(now time.Time) {
	s.LastActivityAt = now
	s.TotalQueries++
}

// SetLanguage records a language choice, completing onboarding if needed.
// Language and Onboarded move together: one is never set without the other.
func (s *Session) SetLanguage(lang language.Language) {
	s.Language = lang
	s.Onboarded = true
	s.State = StateActive
}

// MarkEmergency counts an emergency query against the session.
func (s *Session) MarkEmergency() {
	s.EmergencyQueries++
}

// AppendTurn records an exchange, dropping the oldest entry beyond the
// history bound. Stored responses are truncated; full text lives in the
// persistence collaborator.
func (s *Session) AppendTurn(now time.Time, inbound, response string) {
	// Truncate on runes so Devanagari and Odia text is never cut mid-character.
	if r := []rune(response); len(r) > responseTruncateAt {
		response = string(r[:responseTruncateAt]) + "..."
	}
	s.History = append(s.History, Turn{Timestamp: now, Inbound: inbound, Response: response})
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
}

// IdleSince reports whether the session has been inactive since before cutoff.
func (s *Session) IdleSince(cutoff time.Time) bool {
	return s.LastActivityAt.Before(cutoff)
}
