// Package recovery provides the outermost stage of the request pipeline.
// It contains any panic or unhandled error escaping the inner stages and
// converts it into a uniform JSON 500, so a failing handler never reaches
// the transport layer as a crash.
package recovery

import (
	"fmt"
	"runtime/debug"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// InternalErrorText is the short code carried by every 500 body.
const InternalErrorText = "Internal server error"

// GenericMessage replaces failure details when SuppressDetail is set.
const GenericMessage = "an unexpected error occurred"

// Logger is the subset of the users package logger this stage needs.
type Logger interface {
	Error(msg string, args ...any)
}

// Config defines the configuration for the recovery middleware
type Config struct {
	// Skip defines a function to skip middleware
	Skip func(router.Context) bool

	// SuppressDetail hides the raw failure message from the response
	// body. Off by default; hardened deployments should set this.
	SuppressDetail bool

	// SuccessHandler defines the success handler
	SuccessHandler router.HandlerFunc

	Logger Logger
}

// New creates recovery middleware.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := configDefault(config...)
		if cfg.SuccessHandler == nil {
			cfg.SuccessHandler = nextHandler(hf)
		}

		return func(ctx router.Context) (outErr error) {
			defer func() {
				if p := recover(); p != nil {
					cfg.Logger.Error("request panic",
						"method", ctx.Method(),
						"path", ctx.Path(),
						"panic", p,
						"stack", string(debug.Stack()),
					)
					outErr = respondInternalError(ctx, cfg, fmt.Sprintf("%v", p))
				}
			}()

			if cfg.Skip != nil && cfg.Skip(ctx) {
				return ctx.Next()
			}

			if err := cfg.SuccessHandler(ctx); err != nil {
				cfg.Logger.Error("unhandled request error",
					"method", ctx.Method(),
					"path", ctx.Path(),
					"error", err.Error(),
				)

				// A rich error carrying a client-class code still gets a
				// correct response instead of being flattened into a 500.
				var richErr *goerrors.Error
				if goerrors.As(err, &richErr) &&
					richErr.Code >= router.StatusBadRequest &&
					richErr.Code < router.StatusInternalServerError {
					return ctx.JSON(richErr.Code, map[string]string{
						"error":   string(richErr.Category),
						"message": richErr.Message,
					})
				}

				return respondInternalError(ctx, cfg, err.Error())
			}

			return nil
		}
	}
}

func respondInternalError(ctx router.Context, cfg Config, detail string) error {
	if cfg.SuppressDetail {
		detail = GenericMessage
	}

	return ctx.JSON(router.StatusInternalServerError, map[string]string{
		"error":   InternalErrorText,
		"message": detail,
	})
}

// configDefault returns a default config
func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
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

func (nopLogger) Error(string, ...any) {}
