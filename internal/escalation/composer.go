package escalation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swasthyasetu/health-assistant/internal/emergency"
	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/internal/responders"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// RecordStore persists escalation records. Saves are best-effort: the engine
// logs failures and still answers the patient.
type RecordStore interface {
	SaveEscalation(ctx context.Context, rec Record) error
}

// AlertSender delivers the outbound alert. The engine does not await
// delivery confirmation.
type AlertSender interface {
	SendAlert(ctx context.Context, destinationPhone, body string) error
}

const deliverTimeout = 5 * time.Second

// Composer turns a positive emergency classification into an escalation
// record and an outbound alert for the selected responder.
type Composer struct {
	directory *responders.Directory
	store     RecordStore
	sender    AlertSender
	logger    *logging.Logger
	now       func() time.Time
	sync      bool
}

// NewComposer creates a composer. store and sender may be nil; the composer
// then only composes records.
func NewComposer(directory *responders.Directory, store RecordStore, sender AlertSender, logger *logging.Logger) *Composer {
	if directory == nil {
		panic("escalation: responder directory cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Composer{
		directory: directory,
		store:     store,
		sender:    sender,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the composer's time source for tests.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	if now != nil {
		c.now = now
	}
	return c
}

// withSyncDelivery makes Escalate persist and deliver before returning.
// Tests only; production delivery is detached from the request.
func (c *Composer) withSyncDelivery() *Composer {
	c.sync = true
	return c
}

// Escalate selects a responder, composes the record and alert payload, and
// hands both to the collaborators. Persistence and delivery failures are
// logged and never abort response generation.
func (c *Composer) Escalate(ctx context.Context, userID, district string, lang language.Language, symptomsText string, category emergency.Category) Record {
	responder := c.directory.Select(district, lang)
	now := c.now()
	rec := Record{
		ID:             uuid.New(),
		UserID:         userID,
		SymptomsText:   symptomsText,
		ResponderName:  responder.Name,
		ResponderPhone: responder.Phone,
		EscalationType: string(category),
		Priority:       category.Priority(),
		Status:         StatusEscalated,
		CreatedAt:      now,
	}

	body, err := renderAlert(alertData{
		UserID:   userID,
		Symptoms: symptomsText,
		Category: string(category),
		Priority: rec.Priority,
		Time:     now.Format("2006-01-02 15:04"),
	})
	if err != nil {
		c.logger.Error("alert render failed", "error", err, "user_id", userID)
		body = "EMERGENCY ALERT. Patient " + userID + " needs immediate contact. SWASTHYA SETU"
	}
	alert := Alert{DestinationPhone: responder.Phone, Body: body}

	c.logger.Warn("emergency escalated",
		"user_id", userID,
		"category", string(category),
		"priority", rec.Priority,
		"responder", responder.Name,
	)

	if c.sync {
		c.deliver(ctx, rec, alert)
	} else {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
			defer cancel()
			c.deliver(ctx, rec, alert)
		}()
	}
	return rec
}

func (c *Composer) deliver(ctx context.Context, rec Record, alert Alert) {
	if c.store != nil {
		if err := c.store.SaveEscalation(ctx, rec); err != nil {
			c.logger.Error("escalation save failed", "error", err, "escalation_id", rec.ID)
		}
	}
	if c.sender != nil {
		if err := c.sender.SendAlert(ctx, alert.DestinationPhone, alert.Body); err != nil {
			c.logger.Error("escalation alert send failed", "error", err, "escalation_id", rec.ID)
		}
	}
}
