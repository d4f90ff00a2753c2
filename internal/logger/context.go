package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// DetachCtx returns a context that keeps the request id but outlives the
// request. Background work spawned from a handler uses it so the send is
// not cancelled when the response is written.
func DetachCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	detached := WithRequestID(context.Background(), RequestIDFrom(ctx))
	return context.WithTimeout(detached, timeout)
}

// FromCtx returns the logger with request_id automatically added.
func FromCtx(ctx context.Context) *zap.Logger {
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		return L()
	}
	return L().With(zap.String("request_id", reqID))
}
