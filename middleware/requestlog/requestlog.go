// Package requestlog provides the observation stage of the request
// pipeline: it wraps execution of the remaining chain and records method,
// path, resulting status, and elapsed duration for every request that
// reaches it. It never swallows failures; panics are logged with a failure
// indication and re-raised unchanged for the recovery stage.
package requestlog

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ResponseStatusKey is the locals key handlers record their written status
// under. Router contexts do not expose the status after the fact, so the
// respond helpers in the users package store it here.
const ResponseStatusKey = "response_status"

// Logger is the subset of the users package logger this stage needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config defines the configuration for the request logging middleware
type Config struct {
	// Skip defines a function to skip middleware
	Skip func(router.Context) bool

	// StatusKey defines the locals key the response status is read from
	StatusKey string

	// SuccessHandler defines the success handler
	SuccessHandler router.HandlerFunc

	Logger Logger
}

// New creates request logging middleware. The log level follows the
// status class: 5xx logs as error, 4xx as warning, everything else as
// info.
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

			method := ctx.Method()
			path := ctx.Path()
			start := time.Now()

			defer func() {
				if p := recover(); p != nil {
					cfg.Logger.Error("request failed",
						"method", method,
						"path", path,
						"duration_ms", elapsedMS(start),
						"panic", p,
					)
					panic(p)
				}
			}()

			err := cfg.SuccessHandler(ctx)

			status := responseStatus(ctx, cfg.StatusKey, err)
			args := []any{
				"method", method,
				"path", path,
				"status", status,
				"duration_ms", elapsedMS(start),
			}
			if err != nil {
				args = append(args, "error", err.Error())
			}

			switch {
			case status >= router.StatusInternalServerError:
				cfg.Logger.Error("request completed", args...)
			case status >= router.StatusBadRequest:
				cfg.Logger.Warn("request completed", args...)
			default:
				cfg.Logger.Info("request completed", args...)
			}

			return err
		}
	}
}

// responseStatus resolves the status to log: the status a respond helper
// recorded, else the code carried by a rich error, else 200.
func responseStatus(ctx router.Context, key string, err error) int {
	if raw := ctx.Locals(key); raw != nil {
		if status, ok := raw.(int); ok {
			return status
		}
	}

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Code >= router.StatusBadRequest {
			return richErr.Code
		}
		return router.StatusInternalServerError
	}

	return router.StatusOK
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// configDefault returns a default config
func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.StatusKey == "" {
		cfg.StatusKey = ResponseStatusKey
	}

	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return cfg
}

func nextHandler(hf router.HandlerFunc) router.HandlerFunc {
	if hf != nil {
		return hf
	}
	return func(ctx router.Context) error {
		return ctx.Next()
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
