// Package handlers exposes the assistant engine over HTTP: the SMS webhook,
// the JSON query API and the admin surface.
package handlers

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/swasthyasetu/health-assistant/internal/engine"
	"github.com/swasthyasetu/health-assistant/internal/format"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

var webhookTracer = otel.Tracer("swasthya.internal.http.webhook")

// AssistantHandler serves end-user traffic.
type AssistantHandler struct {
	engine *engine.Engine
	logger *logging.Logger
}

// NewAssistantHandler creates the user-facing handler.
func NewAssistantHandler(eng *engine.Engine, logger *logging.Logger) *AssistantHandler {
	if eng == nil {
		panic("handlers: engine cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AssistantHandler{engine: eng, logger: logger}
}

// HealthCheck handles GET /healthz.
func (h *AssistantHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Webhook handles POST /webhook: an inbound SMS in provider form encoding
// (From, Body). The reply goes back as an XML message document so SMS
// gateways can relay it directly.
func (h *AssistantHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "http.webhook.inbound")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse webhook form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		span.RecordError(err)
		return
	}
	from := strings.TrimSpace(r.FormValue("From"))
	body := strings.TrimSpace(r.FormValue("Body"))
	span.SetAttributes(attribute.String("swasthya.webhook.from", from))

	if from == "" || body == "" {
		err := errors.New("missing required webhook fields")
		h.logger.Warn("invalid webhook payload", "from_present", from != "")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		span.RecordError(err)
		return
	}

	reply := h.engine.Handle(ctx, engine.Inbound{
		SenderID: from,
		Text:     body,
		Channel:  format.ChannelBasic,
	})

	h.logger.Info("webhook reply sent",
		"user_id", from,
		"intent", reply.Intent,
		"emergency", reply.IsEmergency,
	)
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(messageXML(reply.Text))
}

// messageXML wraps a reply body in the gateway response document, escaping
// user-visible text.
func messageXML(body string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?><Response><Message>`)
	_ = xml.EscapeText(&buf, []byte(body))
	buf.WriteString(`</Message></Response>`)
	return buf.Bytes()
}

// QueryRequest is the JSON body for POST /api/query.
type QueryRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Channel string `json:"channel,omitempty"`
}

// Query handles POST /api/query for web and app clients.
func (h *AssistantHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.Message = strings.TrimSpace(req.Message)
	if req.UserID == "" || req.Message == "" {
		http.Error(w, "user_id and message are required", http.StatusBadRequest)
		return
	}

	reply := h.engine.Handle(r.Context(), engine.Inbound{
		SenderID: req.UserID,
		Text:     req.Message,
		Channel:  format.ParseChannel(req.Channel),
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		h.logger.Error("failed to encode query response", "error", err)
	}
}
