package contextutil

import "context"

// Private key type so context values never collide with other packages.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorIDKey   contextKey = "actor_id"
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

func WithActorID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, actorIDKey, id)
}

func GetActorID(ctx context.Context) uint {
	if id, ok := ctx.Value(actorIDKey).(uint); ok {
		return id
	}
	return 0
}
