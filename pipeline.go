package users

import (
	"context"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-users/middleware/authware"
	"github.com/goliatone/go-users/middleware/recovery"
	"github.com/goliatone/go-users/middleware/requestlog"
)

// PipelineConfig configures the fixed request-processing chain.
type PipelineConfig struct {
	// Tokens validates presented bearer tokens. Required.
	Tokens TokenRegistry

	// PublicPaths bypass authentication; defaults to the authware list
	// (docs, login, health).
	PublicPaths []string

	// ContextKey is the locals key for the AuthContext.
	ContextKey string

	// SuppressInternalDetail hides raw failure messages from 500 bodies.
	SuppressInternalDetail bool

	Logger Logger
}

// ApplyRequestPipeline wires the three pipeline stages onto the router in
// their fixed order: error recovery outermost, then authentication, then
// request logging around the route handlers. Keeping the composition in
// one place is what guarantees the ordering invariant (a 401 is produced
// inside recovery's scope, and logging only observes requests that
// cleared authentication).
func ApplyRequestPipeline[T any](r router.Router[T], cfg PipelineConfig) {
	if cfg.Tokens == nil {
		panic("USERS: request pipeline configuration: Tokens is required.")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = defLogger{}
	}

	r.Use(recovery.New(recovery.Config{
		Logger:         logger,
		SuppressDetail: cfg.SuppressInternalDetail,
	}))

	r.Use(authware.New(authware.Config{
		Validator:   cfg.Tokens,
		PublicPaths: cfg.PublicPaths,
		ContextKey:  cfg.ContextKey,
		Logger:      logger,
		ContextEnricher: func(c context.Context, auth *AuthContext) context.Context {
			return WithAuthContext(c, auth)
		},
	}))

	r.Use(requestlog.New(requestlog.Config{
		Logger: logger,
	}))
}
