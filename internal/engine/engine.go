package engine

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/swasthyasetu/health-assistant/internal/emergency"
	"github.com/swasthyasetu/health-assistant/internal/escalation"
	"github.com/swasthyasetu/health-assistant/internal/format"
	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/internal/observability/metrics"
	"github.com/swasthyasetu/health-assistant/internal/responders"
	"github.com/swasthyasetu/health-assistant/internal/session"
	"github.com/swasthyasetu/health-assistant/internal/symptoms"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// Inbound is one message arriving from a channel adapter.
type Inbound struct {
	SenderID string
	Text     string
	Channel  format.Channel
}

// Reply is the contract returned to the channel adapter: the formatted text
// plus structured classification metadata.
type Reply struct {
	Text        string            `json:"response"`
	Intent      string            `json:"intent"`
	Severity    string            `json:"severity"`
	IsEmergency bool              `json:"emergency"`
	Language    language.Language `json:"language"`
}

// Intent values reported in Reply metadata.
const (
	IntentOnboarding = "onboarding"
	IntentLanguage   = "language_selection"
	IntentEmergency  = "emergency"
	IntentSymptoms   = "symptoms"
	IntentContacts   = "contacts"
	IntentGeneral    = "general"
	IntentError      = "error"
)

// TurnStore persists conversation turns. Saves are best-effort.
type TurnStore interface {
	SaveConversationTurn(ctx context.Context, userID, inbound, outbound string) error
}

const persistTimeout = 3 * time.Second

// Engine is the conversational classification and escalation core. One
// instance serves all concurrent request handlers; the session store owns
// per-user serialization and the keyword tables are immutable snapshots.
type Engine struct {
	sessions   session.Store
	detector   *language.Detector
	classifier *emergency.Classifier
	composer   *escalation.Composer
	directory  *responders.Directory
	turns      TurnStore
	logger     *logging.Logger
	metrics    *metrics.EngineMetrics
	hotline    string
	now        func() time.Time
	syncSaves  bool

	catalog atomic.Pointer[symptoms.Catalog]
}

// New creates an engine. turns and m may be nil.
func New(
	sessions session.Store,
	detector *language.Detector,
	catalog *symptoms.Catalog,
	classifier *emergency.Classifier,
	composer *escalation.Composer,
	directory *responders.Directory,
	turns TurnStore,
	logger *logging.Logger,
	m *metrics.EngineMetrics,
	hotline string,
) *Engine {
	if sessions == nil {
		panic("engine: session store cannot be nil")
	}
	if detector == nil {
		panic("engine: language detector cannot be nil")
	}
	if classifier == nil {
		panic("engine: emergency classifier cannot be nil")
	}
	if composer == nil {
		panic("engine: escalation composer cannot be nil")
	}
	if directory == nil {
		panic("engine: responder directory cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if catalog == nil {
		catalog = symptoms.BuiltinCatalog()
	}
	if hotline == "" {
		hotline = "108"
	}
	e := &Engine{
		sessions:   sessions,
		detector:   detector,
		classifier: classifier,
		composer:   composer,
		directory:  directory,
		turns:      turns,
		logger:     logger,
		metrics:    m,
		hotline:    hotline,
		now:        func() time.Time { return time.Now().UTC() },
	}
	e.catalog.Store(catalog)
	return e
}

// WithClock overrides the engine's time source for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	if now != nil {
		e.now = now
	}
	return e
}

// withSyncSaves makes turn persistence synchronous. Tests only.
func (e *Engine) withSyncSaves() *Engine {
	e.syncSaves = true
	return e
}

// SwapCatalog atomically replaces the symptom tables. In-flight requests
// keep the snapshot they started with.
func (e *Engine) SwapCatalog(c *symptoms.Catalog) {
	if c != nil {
		e.catalog.Store(c)
	}
}

// Catalog returns the current symptom table snapshot.
func (e *Engine) Catalog() *symptoms.Catalog {
	return e.catalog.Load()
}

// Handle processes one inbound message and always produces a reply: any
// internal panic degrades to the localized fallback with the emergency
// hotline, never to a propagated failure.
func (e *Engine) Handle(ctx context.Context, in Inbound) (reply Reply) {
	start := e.now()
	lang := e.detector.Default()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("message handling panicked", "panic", r, "user_id", in.SenderID)
			reply = Reply{
				Text:        format.Format(fallbackMessage(lang, e.hotline), in.Channel),
				Intent:      IntentError,
				Severity:    "low",
				Language:    lang,
				IsEmergency: false,
			}
		}
		e.metrics.ObserveMessage(string(reply.Language), reply.Intent)
		e.metrics.ObserveHandleLatency(reply.Intent, e.now().Sub(start).Seconds())
	}()

	text := strings.TrimSpace(in.Text)
	now := e.now()

	// Every inbound message touches the session exactly once, whatever
	// state it is in.
	sess, err := e.sessions.Update(ctx, in.SenderID, func(s *session.Session) {
		s.Touch(now)
	})
	if err != nil {
		e.logger.Error("session update failed", "error", err, "user_id", in.SenderID)
		return Reply{
			Text:     format.Format(fallbackMessage(lang, e.hotline), in.Channel),
			Intent:   IntentError,
			Severity: "low",
			Language: lang,
		}
	}
	if sess.Onboarded {
		lang = sess.Language
	}

	reply = e.route(ctx, in.SenderID, text, sess)
	lang = reply.Language

	e.recordTurn(ctx, in.SenderID, text, reply)

	reply.Text = format.Format(reply.Text, in.Channel)
	return reply
}

// route dispatches on session state and message content, returning the
// canonical (unformatted) reply.
func (e *Engine) route(ctx context.Context, userID, text string, sess session.Session) Reply {
	if selected, ok := language.ParseSelection(text); ok {
		return e.selectLanguage(ctx, userID, selected, sess.Onboarded)
	}

	if !sess.Onboarded {
		// No chosen language yet: detect one from the text for routing
		// metadata, then repeat the menu. The symptom pipeline is reachable
		// only after onboarding.
		det := e.detector.Detect(text)
		e.logger.Debug("language detected", "user_id", userID,
			"language", string(det.Language), "confidence", det.Confidence)
		return Reply{
			Text:     languageMenu,
			Intent:   IntentOnboarding,
			Severity: "low",
			Language: det.Language,
		}
	}

	return e.classify(ctx, userID, text, sess.Language)
}

func (e *Engine) selectLanguage(ctx context.Context, userID string, selected language.Language, wasOnboarded bool) Reply {
	if _, err := e.sessions.Update(ctx, userID, func(s *session.Session) {
		s.SetLanguage(selected)
	}); err != nil {
		e.logger.Error("language selection save failed", "error", err, "user_id", userID)
	}

	if wasOnboarded {
		// Mid-conversation switch: language changes in place, counters and
		// history stay.
		e.logger.Info("language changed", "user_id", userID, "language", string(selected))
		return Reply{
			Text:     languageChangedMessage(selected),
			Intent:   IntentLanguage,
			Severity: "low",
			Language: selected,
		}
	}

	e.logger.Info("user onboarded", "user_id", userID, "language", string(selected))
	return Reply{
		Text:     welcomeMessage(selected, e.hotline),
		Intent:   IntentLanguage,
		Severity: "low",
		Language: selected,
	}
}

// classify runs the emergency and symptom pipeline for an onboarded session.
func (e *Engine) classify(ctx context.Context, userID, text string, lang language.Language) Reply {
	category, classifierHit := e.classifier.Classify(lang, text)

	matcher := symptoms.NewMatcher(e.catalog.Load())
	match, matched := matcher.Match(lang, text)

	// Either signal forces emergency severity, but only a classifier hit
	// creates an escalation record.
	isEmergency := classifierHit || (matched && match.Entry.IsEmergency)

	if isEmergency {
		e.metrics.ObserveEmergency(string(lang))
		if _, err := e.sessions.Update(ctx, userID, func(s *session.Session) {
			s.MarkEmergency()
		}); err != nil {
			e.logger.Error("emergency counter update failed", "error", err, "user_id", userID)
		}

		if classifierHit {
			rec := e.composer.Escalate(ctx, userID, "", lang, text, category)
			e.metrics.ObserveEscalation()
			responder := responders.Responder{Name: rec.ResponderName, Phone: rec.ResponderPhone}
			return Reply{
				Text:        emergencyMessage(lang, e.hotline, responder),
				Intent:      IntentEmergency,
				Severity:    "critical",
				IsEmergency: true,
				Language:    lang,
			}
		}
		// Emergency-flagged symptom entry without a trigger phrase: the
		// entry's own response already carries the urgent instructions.
		return Reply{
			Text:        match.Entry.Response,
			Intent:      IntentEmergency,
			Severity:    "critical",
			IsEmergency: true,
			Language:    lang,
		}
	}

	if matched {
		responder := e.directory.Select("", lang)
		return Reply{
			Text:     symptomMessage(lang, match.Entry.Response, match.Entry.CulturalAdvice, responder),
			Intent:   IntentSymptoms,
			Severity: "mild",
			Language: lang,
		}
	}

	if isDirectoryRequest(text) {
		return Reply{
			Text:     directoryMessage(lang, e.directory.All()),
			Intent:   IntentContacts,
			Severity: "low",
			Language: lang,
		}
	}

	return Reply{
		Text:     helpMessage(lang),
		Intent:   IntentGeneral,
		Severity: "low",
		Language: lang,
	}
}

// recordTurn appends to the session's rolling history and hands the turn to
// the persistence collaborator without blocking the reply.
func (e *Engine) recordTurn(ctx context.Context, userID, inbound string, reply Reply) {
	now := e.now()
	if _, err := e.sessions.Update(ctx, userID, func(s *session.Session) {
		s.AppendTurn(now, inbound, reply.Text)
	}); err != nil {
		e.logger.Error("history append failed", "error", err, "user_id", userID)
	}

	if e.turns == nil {
		return
	}
	if e.syncSaves {
		e.saveTurn(ctx, userID, inbound, reply.Text)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		e.saveTurn(ctx, userID, inbound, reply.Text)
	}()
}

func (e *Engine) saveTurn(ctx context.Context, userID, inbound, outbound string) {
	if err := e.turns.SaveConversationTurn(ctx, userID, inbound, outbound); err != nil {
		e.logger.Error("conversation turn save failed", "error", err, "user_id", userID)
	}
}
