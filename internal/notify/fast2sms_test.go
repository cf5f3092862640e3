package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, server *httptest.Server, cfg Fast2SMSConfig) *Fast2SMSClient {
	t.Helper()
	cfg.APIKey = "test-key"
	cfg.BaseURL = server.URL
	client, err := NewFast2SMS(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestSendAlert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bulkV2" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if !strings.Contains(string(body), "\"numbers\":\"9437123456\"") {
			t.Fatalf("expected numbers field, got %s", string(body))
		}
		if !strings.Contains(string(body), "\"route\":\"q\"") {
			t.Fatalf("expected quick route, got %s", string(body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"return":true,"request_id":"req_123"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Fast2SMSConfig{})
	if err := client.SendAlert(context.Background(), "9437123456", "emergency alert body"); err != nil {
		t.Fatalf("send alert: %v", err)
	}
}

func TestSendAlertProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"return":false,"request_id":"req_456"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Fast2SMSConfig{})
	err := client.SendAlert(context.Background(), "9437123456", "body")
	if err == nil || !strings.Contains(err.Error(), "rejected") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestSendAlertRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"return":true,"request_id":"req_789"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Fast2SMSConfig{MaxRetries: 2, Backoff: time.Millisecond})
	if err := client.SendAlert(context.Background(), "9437123456", "body"); err != nil {
		t.Fatalf("send alert: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestSendAlertNoRetryOnBadRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"return":false,"message":"invalid authentication"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Fast2SMSConfig{MaxRetries: 3, Backoff: time.Millisecond})
	err := client.SendAlert(context.Background(), "9437123456", "body")
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("expected status error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestNewFast2SMSDefaultsAndValidation(t *testing.T) {
	if _, err := NewFast2SMS(Fast2SMSConfig{}); err == nil {
		t.Fatalf("expected api key validation error")
	}
	client, err := NewFast2SMS(Fast2SMSConfig{APIKey: "key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.baseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", client.baseURL)
	}
	if client.httpClient == nil || client.httpClient.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout")
	}
	if client.maxRetries != 0 {
		t.Fatalf("expected retries to default to 0")
	}
}

func TestSendAlertValidation(t *testing.T) {
	client, err := NewFast2SMS(Fast2SMSConfig{APIKey: "key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.SendAlert(context.Background(), "", "body"); err == nil {
		t.Fatalf("expected phone validation error")
	}
	if err := client.SendAlert(context.Background(), "9437123456", " "); err == nil {
		t.Fatalf("expected body validation error")
	}
}
