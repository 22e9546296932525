package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamSender appends notification messages to a Redis stream that the
// delivery worker (email/SMS gateway) consumes independently.
type StreamSender struct {
	client *redis.Client
	stream string
}

// NewStreamSender constructs a StreamSender.
func NewStreamSender(client *redis.Client, stream string) *StreamSender {
	if stream == "" {
		stream = "brgy:notifications"
	}
	return &StreamSender{client: client, stream: stream}
}

// Send appends the message to the configured stream.
func (s *StreamSender) Send(ctx context.Context, msg Message) error {
	if s.client == nil {
		return fmt.Errorf("redis client not configured")
	}

	recipients, err := json.Marshal(msg.Recipients)
	if err != nil {
		return fmt.Errorf("marshal recipients: %w", err)
	}

	values := map[string]interface{}{
		"kind":         string(msg.Kind),
		"request_id":   msg.RequestID,
		"request_type": msg.RequestType,
		"barangay":     msg.Barangay,
		"recipients":   string(recipients),
		"subject":      msg.Subject,
		"body":         msg.Body,
		"created_at":   msg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if err := s.client.XAdd(ctx, &redis.XAddArgs{Stream: s.stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
