package escalation

import (
	"time"

	"github.com/google/uuid"
)

// StatusEscalated is the only status this engine writes. Downstream systems
// own resolution tracking and later transitions.
const StatusEscalated = "escalated"

// Record captures one emergency escalation. Created once per emergency event
// and never mutated by the engine.
type Record struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	SymptomsText   string    `json:"symptoms_text"`
	ResponderName  string    `json:"responder_name"`
	ResponderPhone string    `json:"responder_phone"`
	EscalationType string    `json:"escalation_type"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Alert is the outbound payload handed to the notification collaborator. The
// engine composes it; delivery belongs to the surrounding service layer.
type Alert struct {
	DestinationPhone string
	Body             string
}
