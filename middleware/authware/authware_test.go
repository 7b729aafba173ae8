package authware_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	users "github.com/goliatone/go-users"
	"github.com/goliatone/go-users/middleware/authware"
)

type stubValidator struct {
	valid map[string]bool
	calls []string
}

func (s *stubValidator) IsValid(token string) bool {
	s.calls = append(s.calls, token)
	return s.valid[token]
}

func newHandler(cfg authware.Config) router.HandlerFunc {
	return authware.New(cfg)(func(ctx router.Context) error {
		return ctx.Next()
	})
}

func TestAuthwareValidBearerToken(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{"token_demo123": true}}
	handler := newHandler(authware.Config{Validator: validator})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer token_demo123")
	ctx.On("Locals", authware.DefaultContextKey, mock.AnythingOfType("*authware.AuthContext")).Return(nil)

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)
	require.Equal(t, []string{"token_demo123"}, validator.calls)
}

func TestAuthwareSchemeIsCaseInsensitive(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{"token_demo123": true}}
	handler := newHandler(authware.Config{Validator: validator})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("bearer token_demo123")
	ctx.On("Locals", authware.DefaultContextKey, mock.AnythingOfType("*authware.AuthContext")).Return(nil)

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)
}

func TestAuthwareBareTokenAccepted(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{"token_demo123": true}}
	handler := newHandler(authware.Config{Validator: validator})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("token_demo123")
	ctx.On("Locals", authware.DefaultContextKey, mock.AnythingOfType("*authware.AuthContext")).Return(nil)

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)
}

func TestAuthwareMissingHeader(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{}}
	handler := newHandler(authware.Config{Validator: validator})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("")

	var body map[string]string
	ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Run(func(args mock.Arguments) {
		body = args.Get(1).(map[string]string)
	}).Return(nil)

	err := handler(ctx)
	require.NoError(t, err)
	require.False(t, ctx.NextCalled)
	require.Equal(t, "Unauthorized", body["error"])
	require.Equal(t, authware.UnauthorizedMessage, body["message"])
	require.Empty(t, validator.calls, "validator must not run without a token")
}

func TestAuthwareInvalidToken(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{}}
	handler := newHandler(authware.Config{Validator: validator})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer token_bogus")

	var body map[string]string
	ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Run(func(args mock.Arguments) {
		body = args.Get(1).(map[string]string)
	}).Return(nil)

	err := handler(ctx)
	require.NoError(t, err)
	require.False(t, ctx.NextCalled)
	require.Equal(t, "Unauthorized", body["error"])
	require.Equal(t, authware.UnauthorizedMessage, body["message"])
}

func TestAuthwarePublicPathSkipsValidation(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{}}
	handler := newHandler(authware.Config{Validator: validator})

	for _, path := range []string{"/health", "/auth/login", "/docs", "/docs/index.html", "/AUTH/LOGIN"} {
		ctx := router.NewMockContext()
		ctx.On("Path").Return(path)

		err := handler(ctx)
		require.NoError(t, err, "path %s", path)
		require.True(t, ctx.NextCalled, "path %s", path)
	}
	require.Empty(t, validator.calls)
}

func TestAuthwareCustomPublicPaths(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{}}
	handler := newHandler(authware.Config{
		Validator:   validator,
		PublicPaths: []string{"/status"},
	})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/status")

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)

	// the built-in defaults no longer apply once overridden
	ctx = router.NewMockContext()
	ctx.On("Path").Return("/health")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("")
	ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Return(nil)

	err = handler(ctx)
	require.NoError(t, err)
	require.False(t, ctx.NextCalled)
}

func TestAuthwareSkip(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{}}
	handler := newHandler(authware.Config{
		Validator: validator,
		Skip: func(router.Context) bool {
			return true
		},
	})

	ctx := router.NewMockContext()

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)
	require.Empty(t, validator.calls)
}

func TestAuthwareContextEnricher(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{"token_demo123": true}}

	handler := newHandler(authware.Config{
		Validator:       validator,
		ContextEnricher: users.WithAuthContext,
	})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer token_demo123")
	ctx.On("Locals", authware.DefaultContextKey, mock.AnythingOfType("*authware.AuthContext")).Return(nil)
	ctx.On("Context").Return(context.Background())

	var enriched context.Context
	ctx.On("SetContext", mock.Anything).Run(func(args mock.Arguments) {
		enriched = args.Get(0).(context.Context)
	}).Return()

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)

	auth, ok := users.AuthFromContext(enriched)
	require.True(t, ok)
	require.Equal(t, "token_demo123", auth.Token)
	require.False(t, auth.AuthenticatedAt.IsZero())
}

func TestAuthwareCustomErrorHandler(t *testing.T) {
	validator := &stubValidator{valid: map[string]bool{}}

	var handled error
	handler := newHandler(authware.Config{
		Validator: validator,
		ErrorHandler: func(ctx router.Context, err error) error {
			handled = err
			return nil
		},
	})

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer token_bogus")

	err := handler(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, handled, authware.ErrTokenInvalid)
}

func TestAuthwareAcceptsIssuedToken(t *testing.T) {
	registry := users.NewTokenRegistry()
	handler := newHandler(authware.Config{Validator: registry})

	token := registry.Issue()

	ctx := router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer " + token)
	ctx.On("Locals", authware.DefaultContextKey, mock.AnythingOfType("*authware.AuthContext")).Return(nil)

	err := handler(ctx)
	require.NoError(t, err)
	require.True(t, ctx.NextCalled)

	// seeded tokens keep working alongside freshly issued ones
	ctx = router.NewMockContext()
	ctx.On("Path").Return("/users")
	ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer " + users.TokenDemo)
	ctx.On("Locals", authware.DefaultContextKey, mock.AnythingOfType("*authware.AuthContext")).Return(nil)

	require.NoError(t, handler(ctx))
	require.True(t, ctx.NextCalled)
}

func TestAuthwareRequiresValidator(t *testing.T) {
	require.Panics(t, func() {
		newHandler(authware.Config{})
	})
}
