package auth

import (
	"context"
)

type ctxKey string

const sessionKey ctxKey = "session"

// Session is the authenticated account behind a request.
type Session struct {
	UserID string
	Email  string
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession returns nil when the request carries no valid session.
func GetSession(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey).(*Session); ok {
		return s
	}
	return nil
}

// GetEmail is the account identity grants are keyed by.
func GetEmail(ctx context.Context) string {
	if s := GetSession(ctx); s != nil {
		return s.Email
	}
	return ""
}
