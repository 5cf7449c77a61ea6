package auth

import "context"

type ctxKey struct{}

// SetUserToContext returns a copy of ctx carrying the authenticated user.
func SetUserToContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// GetUserFromContext returns the authenticated user attached by the
// middleware, or false when the request is unauthenticated.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*User)
	return user, ok && user != nil
}

// GetUserIDFromContext returns the authenticated user's identifier, or an
// empty string when the request is unauthenticated.
func GetUserIDFromContext(ctx context.Context) string {
	if user, ok := GetUserFromContext(ctx); ok {
		return user.ID
	}
	return ""
}
