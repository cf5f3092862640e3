package notify

import (
	"context"

	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// LogSender writes alerts to the log instead of sending SMS. Used in dev
// environments and when no provider key is configured.
type LogSender struct {
	logger *logging.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

// SendAlert logs the alert and reports success.
func (s *LogSender) SendAlert(ctx context.Context, phone, body string) error {
	s.logger.Info("alert sms suppressed (log-only sender)", "phone", phone, "body_length", len(body))
	return nil
}
