package auth

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the authenticated identity performing a request. It is resolved
// once by the auth middleware and passed through the context to every
// service operation.
type Actor struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

type ctxKey string

const actorKey ctxKey = "actor"

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFrom retrieves the actor safely; ok is false for anonymous requests.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}
