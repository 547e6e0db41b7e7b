package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// Resend's batch endpoint accepts at most 100 messages per call.
const resendBatchLimit = 100

// ResendSender delivers mail through the Resend API. Requests without an
// explicit From fall back to the configured default address.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender authenticated with the given API key.
// PRE: apiKey is a valid Resend API key; from is a valid sender address
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	p := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		p.ReplyTo = req.ReplyTo
	}
	return p
}

// Send delivers one email.
// POST: Returns the Resend message id once the email is queued
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.params(req))
	if err != nil {
		slog.Error("email_event", "event", "send_failed", "to", req.To, "subject", req.Subject, "error", err)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_event", "event", "sent", "message_id", sent.Id, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch delivers the requests in chunks through Resend's batch endpoint.
// A chunk failure stops the run; results for already-queued chunks are
// returned alongside the error.
// POST: Results are in request order
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	var results []SendResult
	for start := 0; start < len(reqs); start += resendBatchLimit {
		end := start + resendBatchLimit
		if end > len(reqs) {
			end = len(reqs)
		}

		batch := make([]*resend.SendEmailRequest, 0, end-start)
		for _, req := range reqs[start:end] {
			batch = append(batch, s.params(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, batch)
		if err != nil {
			slog.Error("email_event", "event", "batch_failed", "batch_size", len(batch), "error", err)
			return results, fmt.Errorf("resend batch send failed: %w", err)
		}

		now := time.Now()
		for _, item := range resp.Data {
			results = append(results, SendResult{MessageID: item.Id, SentAt: now})
		}
		slog.Info("email_event", "event", "batch_sent", "count", len(batch), "total_sent", len(results))
	}

	return results, nil
}
