package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes notifications to the structured log instead of delivering
// them. Used in development and as the fallback when no transport is wired.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("notification",
		zap.String("kind", string(msg.Kind)),
		zap.String("request_id", msg.RequestID),
		zap.String("request_type", msg.RequestType),
		zap.String("barangay", msg.Barangay),
		zap.Strings("recipients", msg.Recipients),
		zap.String("subject", msg.Subject),
	)
	return nil
}
