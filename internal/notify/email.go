package notify

import (
	"context"

	"toko-be/internal/logger"

	"go.uber.org/zap"
)

// Sender delivers transactional messages to shoppers. Implementations
// must not block the caller on slow upstreams longer than the ctx allows.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes the message to the structured log instead of an SMTP
// upstream. It is the default sender in development and test environments.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	logger.FromCtx(ctx).Info("email sent",
		zap.String("layer", "notify"),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}
