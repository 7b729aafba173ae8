package users

import (
	"context"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-users/middleware/authware"
)

// AuthContext is the per-request authentication proof produced by the
// authware middleware: the accepted token and when it was validated.
type AuthContext = authware.AuthContext

var authCtxKey = &contextKey{"auth"}

type contextKey struct {
	name string
}

// WithAuthContext sets the AuthContext in the given context
func WithAuthContext(r context.Context, auth *AuthContext) context.Context {
	return context.WithValue(r, authCtxKey, auth)
}

// AuthFromContext finds the AuthContext from the context.
func AuthFromContext(ctx context.Context) (*AuthContext, bool) {
	raw, ok := ctx.Value(authCtxKey).(*AuthContext)
	return raw, ok
}

// GetRouterAuthContext extracts the AuthContext from the router context
func GetRouterAuthContext(ctx router.Context, key string) (*AuthContext, bool) {
	if key == "" {
		key = authware.DefaultContextKey
	}

	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}

	auth, ok := raw.(*AuthContext)
	return auth, ok
}
