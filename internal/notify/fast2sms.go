// Package notify delivers emergency alerts to health responders over SMS.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://www.fast2sms.com/dev"
	defaultUserAgent = "swasthya-setu-alerts/0.1"
)

// Fast2SMSConfig controls how the Fast2SMS client behaves.
type Fast2SMSConfig struct {
	BaseURL    string
	APIKey     string
	SenderID   string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Fast2SMSClient sends alert SMS through the Fast2SMS bulk API. It satisfies
// the escalation composer's AlertSender interface.
type Fast2SMSClient struct {
	apiKey     string
	baseURL    string
	senderID   string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
	userAgent  string
}

// NewFast2SMS creates a configured client with sane defaults.
func NewFast2SMS(cfg Fast2SMSConfig) (*Fast2SMSClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("notify: Fast2SMS API key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fast2SMSClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		senderID:   cfg.SenderID,
		httpClient: httpClient,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

type sendResponse struct {
	Return    bool   `json:"return"`
	RequestID string `json:"request_id"`
}

// SendAlert delivers body to the phone number over the quick-transactional
// route. Retries on timeouts, 429 and 5xx.
func (c *Fast2SMSClient) SendAlert(ctx context.Context, phone, body string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("notify: destination phone required")
	}
	if strings.TrimSpace(body) == "" {
		return errors.New("notify: alert body required")
	}
	payload, err := json.Marshal(struct {
		Route    string `json:"route"`
		SenderID string `json:"sender_id,omitempty"`
		Message  string `json:"message"`
		Numbers  string `json:"numbers"`
	}{
		Route:    "q",
		SenderID: c.senderID,
		Message:  body,
		Numbers:  phone,
	})
	if err != nil {
		return fmt.Errorf("notify: marshal send body: %w", err)
	}

	data, err := c.invoke(ctx, "/bulkV2", payload)
	if err != nil {
		return err
	}
	var resp sendResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("notify: decode response: %w", err)
	}
	if !resp.Return {
		return fmt.Errorf("notify: provider rejected alert (request %s)", resp.RequestID)
	}
	c.logger.Info("alert sms sent", "request_id", resp.RequestID)
	return nil
}

func (c *Fast2SMSClient) invoke(ctx context.Context, path string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("notify: build request: %w", err)
		}
		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !shouldRetry(0, err) || attempt == c.maxRetries {
				return nil, fmt.Errorf("notify: http error: %w", err)
			}
			lastErr = err
			c.logRetry(path, attempt, 0, err)
			if sleepErr := c.sleep(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("notify: read response: %w", readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return data, nil
		}
		apiErr := fmt.Errorf("notify: provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		if attempt < c.maxRetries && shouldRetry(resp.StatusCode, nil) {
			lastErr = apiErr
			c.logRetry(path, attempt, resp.StatusCode, apiErr)
			if sleepErr := c.sleep(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		return nil, apiErr
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("notify: request failed without response")
}

func (c *Fast2SMSClient) sleep(ctx context.Context, attempt int) error {
	delay := c.backoff * time.Duration(1<<attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Fast2SMSClient) logRetry(path string, attempt int, status int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("alert sms retry",
		"path", path,
		"attempt", attempt+1,
		"status", status,
		"error", err,
	)
}

func shouldRetry(status int, err error) bool {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}
		return !errors.Is(err, context.Canceled)
	}
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500 && status <= 599
}
