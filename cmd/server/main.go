package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	users "github.com/goliatone/go-users"
	"github.com/goliatone/go-users/cmd/server/config"
)

func main() {

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("go-users"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.AppConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := cfg.Raw()

	store := users.NewInMemoryStore()
	tokens := users.NewTokenRegistry(app.GetAuth().GetSeedTokens()...)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: true,
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))

	users.ApplyRequestPipeline(srv.Router(), users.PipelineConfig{
		Tokens:                 tokens,
		PublicPaths:            app.GetAuth().GetPublicPaths(),
		ContextKey:             app.GetAuth().GetContextKey(),
		SuppressInternalDetail: app.GetAuth().GetSuppressInternalDetail(),
		Logger:                 lgr.GetLogger("http"),
	})

	users.RegisterUserRoutes(srv.Router(),
		users.WithStore(store),
		users.WithTokenRegistry(tokens),
		users.WithLogger(lgr.GetLogger("users")),
		users.WithDebug(app.GetServer().GetDebug()),
	)

	srv.Serve(app.GetServer().GetAddress())

	WaitExitSignal()
}

// WaitExitSignal blocks until the process receives SIGINT or SIGTERM.
func WaitExitSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
