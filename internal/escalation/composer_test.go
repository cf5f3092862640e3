package escalation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/swasthyasetu/health-assistant/internal/emergency"
	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/internal/responders"
)

type fakeStore struct {
	saved []Record
	err   error
}

func (f *fakeStore) SaveEscalation(ctx context.Context, rec Record) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, rec)
	return nil
}

type fakeSender struct {
	to   []string
	body []string
	err  error
}

func (f *fakeSender) SendAlert(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}

func testComposer(store *fakeStore, sender *fakeSender) *Composer {
	fixed := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	return NewComposer(responders.NewDirectory(nil), store, sender, nil).
		WithClock(func() time.Time { return fixed }).
		withSyncDelivery()
}

func TestEscalateComposesRecord(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	c := testComposer(store, sender)

	rec := c.Escalate(context.Background(), "+919437000001", "Kalahandi", language.Hindi,
		"सीने में दर्द", emergency.CategoryChestPain)

	if rec.Priority != "high" {
		t.Fatalf("priority = %s, want high for chest pain", rec.Priority)
	}
	if rec.Status != StatusEscalated {
		t.Fatalf("status = %s, want %s", rec.Status, StatusEscalated)
	}
	if rec.ResponderName != "Sunita Devi" {
		t.Fatalf("responder = %s, want district+language pick", rec.ResponderName)
	}
	if rec.EscalationType != "chest_pain" {
		t.Fatalf("escalation type = %s", rec.EscalationType)
	}
	if rec.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("record id not assigned")
	}
}

func TestEscalatePersistsAndAlerts(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	c := testComposer(store, sender)

	rec := c.Escalate(context.Background(), "+919437000002", "Puri", language.Odia,
		"ଶ୍ୱାସ କଷ୍ଟ", emergency.CategoryBreathing)

	if len(store.saved) != 1 || store.saved[0].ID != rec.ID {
		t.Fatal("record not persisted")
	}
	if len(sender.to) != 1 || sender.to[0] != rec.ResponderPhone {
		t.Fatalf("alert destination = %v, want responder phone", sender.to)
	}
	body := sender.body[0]
	for _, want := range []string{"EMERGENCY ALERT", "+919437000002", "ଶ୍ୱାସ କଷ୍ଟ", "breathing", "2026-02-10 09:30"} {
		if !strings.Contains(body, want) {
			t.Fatalf("alert body missing %q:\n%s", want, body)
		}
	}
}

func TestEscalateMediumPriority(t *testing.T) {
	c := testComposer(&fakeStore{}, &fakeSender{})
	rec := c.Escalate(context.Background(), "u", "", language.English, "103 fever", emergency.CategoryHighFever)
	if rec.Priority != "medium" {
		t.Fatalf("priority = %s, want medium", rec.Priority)
	}
}

func TestEscalateCollaboratorFailuresDoNotAbort(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	sender := &fakeSender{err: errors.New("gateway down")}
	c := testComposer(store, sender)

	rec := c.Escalate(context.Background(), "u", "Cuttack", language.Odia, "text", emergency.CategoryUnconscious)
	if rec.Status != StatusEscalated {
		t.Fatal("record must still be composed when collaborators fail")
	}
}

func TestEscalateNilCollaborators(t *testing.T) {
	c := NewComposer(responders.NewDirectory(nil), nil, nil, nil).withSyncDelivery()
	rec := c.Escalate(context.Background(), "u", "", language.English, "chest pain", emergency.CategoryChestPain)
	if rec.ResponderPhone == "" {
		t.Fatal("responder must still be selected")
	}
}
