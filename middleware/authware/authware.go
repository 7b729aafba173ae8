package authware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-router"
)

var (
	ErrTokenMissing = errors.New("missing authorization header")
	ErrTokenInvalid = errors.New("invalid bearer token")
)

// UnauthorizedMessage is the hint returned with every rejection.
const UnauthorizedMessage = "Invalid or missing token. Use /auth/login to get a valid token."

// DefaultContextKey is the locals key the AuthContext is stored under.
const DefaultContextKey = "auth"

// DefaultAuthScheme is the scheme stripped from the Authorization header.
const DefaultAuthScheme = "Bearer"

// DefaultPublicPaths bypass authentication: documentation, login, and the
// health check. Matching is a case-insensitive prefix test.
func DefaultPublicPaths() []string {
	return []string{"/docs", "/auth/login", "/health"}
}

// TokenValidator interface for checking tokens without import cycles.
// This mirrors the TokenRegistry.IsValid method from the users package.
type TokenValidator interface {
	IsValid(token string) bool
}

// Logger is the subset of the users package logger the middleware needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// AuthContext is the per-request proof of authentication attached for
// downstream stages and handlers. It is not persisted anywhere.
type AuthContext struct {
	Token           string    `json:"token"`
	AuthenticatedAt time.Time `json:"authenticated_at"`
}

// Config defines the configuration for the bearer-token middleware
type Config struct {
	// Skip defines a function to skip middleware
	Skip func(router.Context) bool

	// PublicPaths pass through without a token; each entry is matched as
	// a case-insensitive path prefix
	PublicPaths []string

	// Validator decides whether a presented token is currently valid.
	// Required.
	Validator TokenValidator

	// ContextKey defines the locals key for the AuthContext
	ContextKey string

	// AuthScheme defines the scheme stripped from the header value. A
	// bare token without the scheme is accepted too.
	AuthScheme string

	// HeaderName defines the header carrying the token
	HeaderName string

	// ContextEnricher propagates the AuthContext to the standard Go
	// context after successful validation
	ContextEnricher func(c context.Context, auth *AuthContext) context.Context

	// ErrorHandler defines the error handler
	ErrorHandler router.ErrorHandler

	// SuccessHandler defines the success handler
	SuccessHandler router.HandlerFunc

	Logger Logger
}

// New creates bearer-token authentication middleware. Requests to public
// paths continue unauthenticated; everything else must present a token the
// Validator accepts, or the request is rejected with a 401 JSON body.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := configDefault(config...)
		if cfg.SuccessHandler == nil {
			cfg.SuccessHandler = nextHandler(hf)
		}

		return func(ctx router.Context) error {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return ctx.Next()
			}

			if isPublicPath(ctx.Path(), cfg.PublicPaths) {
				return ctx.Next()
			}

			raw := strings.TrimSpace(ctx.GetString(cfg.HeaderName, ""))
			if raw == "" {
				cfg.Logger.Warn("request missing authorization header", "path", ctx.Path())
				return cfg.ErrorHandler(ctx, ErrTokenMissing)
			}

			token := stripScheme(raw, cfg.AuthScheme)
			if !cfg.Validator.IsValid(token) {
				cfg.Logger.Warn("request with invalid token", "path", ctx.Path())
				return cfg.ErrorHandler(ctx, ErrTokenInvalid)
			}

			auth := &AuthContext{
				Token:           token,
				AuthenticatedAt: time.Now().UTC(),
			}
			ctx.Locals(cfg.ContextKey, auth)

			if cfg.ContextEnricher != nil {
				ctx.SetContext(cfg.ContextEnricher(ctx.Context(), auth))
			}

			cfg.Logger.Debug("request authenticated", "path", ctx.Path())

			return cfg.SuccessHandler(ctx)
		}
	}
}

// stripScheme extracts the candidate token from a header value. Both
// "Bearer <token>" (scheme case-insensitive) and a plain "<token>" are
// accepted, matching what API clients actually send.
func stripScheme(value, scheme string) string {
	l := len(scheme)
	if l > 0 && len(value) > l+1 && strings.EqualFold(value[:l], scheme) && value[l] == ' ' {
		return strings.TrimSpace(value[l:])
	}
	return strings.TrimSpace(value)
}

func isPublicPath(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if p == "" {
			continue
		}
		if len(path) >= len(p) && strings.EqualFold(path[:len(p)], p) {
			return true
		}
	}
	return false
}

// configDefault returns a default config
func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("AUTH: bearer middleware configuration: Validator is required.")
	}

	if cfg.PublicPaths == nil {
		cfg.PublicPaths = DefaultPublicPaths()
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = router.HeaderAuthorization
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return cfg
}

// nextHandler continues the chain through the wrapped handler when one is
// provided, else through the context.
func nextHandler(hf router.HandlerFunc) router.HandlerFunc {
	if hf != nil {
		return hf
	}
	return func(ctx router.Context) error {
		return ctx.Next()
	}
}

func defaultErrorHandler(ctx router.Context, _ error) error {
	return ctx.JSON(router.StatusUnauthorized, map[string]string{
		"error":   "Unauthorized",
		"message": UnauthorizedMessage,
	})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
