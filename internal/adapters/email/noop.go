package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs sends without delivering anything. Used in development and
// whenever no Resend API key is configured.
type NoopSender struct{}

// NewNoopSender creates a NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the request and reports success.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("email_event", "event", "noop_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// SendBatch logs each request and reports success for all of them.
func (s *NoopSender) SendBatch(_ context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	for i, req := range reqs {
		slog.Info("email_event", "event", "noop_batch_send", "index", i, "to", req.To, "subject", req.Subject)
		results = append(results, SendResult{
			MessageID: fmt.Sprintf("noop-batch-%d-%d", time.Now().UnixNano(), i),
			SentAt:    time.Now(),
		})
	}
	return results, nil
}
