package audit

import "context"

type sessionKey struct{}

// WithSession tags ctx with the voice-session id of the caller so audit
// events written downstream can record who acted.
func WithSession(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionFromContext returns the session id set by WithSession, or ""
// when the call was not attributed to a session.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
