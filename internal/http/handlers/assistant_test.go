package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/swasthyasetu/health-assistant/internal/emergency"
	"github.com/swasthyasetu/health-assistant/internal/engine"
	"github.com/swasthyasetu/health-assistant/internal/escalation"
	"github.com/swasthyasetu/health-assistant/internal/history"
	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/internal/responders"
	"github.com/swasthyasetu/health-assistant/internal/session"
	"github.com/swasthyasetu/health-assistant/internal/symptoms"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

func newTestEngine(t *testing.T) (*engine.Engine, session.Store) {
	t.Helper()
	logger := logging.New("error")
	store := session.NewMemoryStore()
	directory := responders.NewDirectory(responders.Builtin())
	composer := escalation.NewComposer(directory, nil, nil, logger)
	eng := engine.New(
		store,
		language.NewDetector(language.English),
		symptoms.BuiltinCatalog(),
		emergency.NewClassifier(),
		composer,
		directory,
		nil,
		logger,
		nil,
		"108",
	)
	return eng, store
}

func postForm(t *testing.T, h http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestWebhookRepliesWithXML(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewAssistantHandler(eng, logging.New("error"))

	rec := postForm(t, h.Webhook, "/webhook", url.Values{
		"From": {"+919437000001"},
		"Body": {"hello"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("content type = %q, want application/xml", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?><Response><Message>`) {
		t.Fatalf("unexpected response envelope: %s", body)
	}
	if !strings.Contains(body, "English") {
		t.Fatalf("new user should see the language menu, got %s", body)
	}
}

func TestWebhookRejectsMissingFields(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewAssistantHandler(eng, logging.New("error"))

	rec := postForm(t, h.Webhook, "/webhook", url.Values{"From": {"+919437000001"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWebhookEscapesReplyText(t *testing.T) {
	got := string(messageXML(`see a doctor if temp > 103 & rising`))
	if !strings.Contains(got, "&amp;") || !strings.Contains(got, "&gt;") {
		t.Fatalf("reply not escaped: %s", got)
	}
	if strings.Contains(got, " & ") {
		t.Fatalf("raw ampersand leaked into XML: %s", got)
	}
}

func TestQueryReturnsStructuredReply(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewAssistantHandler(eng, logging.New("error"))

	// Onboard first so the second query reaches the symptom pipeline.
	payload := `{"user_id":"web-1","message":"1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Query(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("onboarding query status = %d", rec.Code)
	}

	payload = `{"user_id":"web-1","message":"I have a fever","channel":"rich"}`
	req = httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(payload))
	rec = httptest.NewRecorder()
	h.Query(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var reply engine.Reply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Intent != engine.IntentSymptoms {
		t.Fatalf("intent = %q, want %q", reply.Intent, engine.IntentSymptoms)
	}
	if reply.Language != language.English {
		t.Fatalf("language = %q, want en", reply.Language)
	}
}

func TestQueryValidation(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewAssistantHandler(eng, logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"message":"hi"}`))
	rec := httptest.NewRecorder()
	h.Query(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`not json`))
	rec = httptest.NewRecorder()
	h.Query(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}

type fakeArchive struct {
	turns       []history.Turn
	escalations []escalation.Record
	count       int
}

func (f *fakeArchive) ListTurns(ctx context.Context, userID string, limit int) ([]history.Turn, error) {
	return f.turns, nil
}

func (f *fakeArchive) ListEscalations(ctx context.Context, limit int) ([]escalation.Record, error) {
	return f.escalations, nil
}

func (f *fakeArchive) CountEscalationsSince(ctx context.Context, cutoff time.Time) (int, error) {
	return f.count, nil
}

func TestAdminStats(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	_, _ = store.Update(ctx, "u1", func(s *session.Session) {
		s.Touch(time.Now())
		s.SetLanguage(language.Hindi)
	})

	archive := &fakeArchive{count: 2}
	h := NewAdminHandler(eng, store, archive, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		TotalSessions  int            `json:"total_sessions"`
		OnboardedUsers int            `json:"onboarded_users"`
		SymptomEntries map[string]int `json:"symptom_entries"`
		Escalations24H int            `json:"escalations_24h"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.TotalSessions != 1 || resp.OnboardedUsers != 1 {
		t.Fatalf("sessions=%d onboarded=%d, want 1/1", resp.TotalSessions, resp.OnboardedUsers)
	}
	if resp.SymptomEntries["en"] == 0 {
		t.Fatal("expected English symptom entry count")
	}
	if resp.Escalations24H != 2 {
		t.Fatalf("escalations_24h = %d, want 2", resp.Escalations24H)
	}
}

type fakeReloader struct {
	counts map[string]int
	calls  int
}

func (f *fakeReloader) Reload() (map[string]int, error) {
	f.calls++
	return f.counts, nil
}

func TestAdminReloadSymptoms(t *testing.T) {
	eng, store := newTestEngine(t)
	rel := &fakeReloader{counts: map[string]int{"en": 12}}
	h := NewAdminHandler(eng, store, nil, rel, logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/admin/symptoms/reload", nil)
	rec := httptest.NewRecorder()
	h.ReloadSymptoms(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rel.calls != 1 {
		t.Fatalf("reloader called %d times, want 1", rel.calls)
	}
}

func TestAdminEndpointsWithoutArchive(t *testing.T) {
	eng, store := newTestEngine(t)
	h := NewAdminHandler(eng, store, nil, nil, logging.New("error"))

	rec := httptest.NewRecorder()
	h.ListEscalations(rec, httptest.NewRequest(http.MethodGet, "/admin/escalations", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ReloadSymptoms(rec, httptest.NewRequest(http.MethodPost, "/admin/symptoms/reload", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}
}
