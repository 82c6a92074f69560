package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mhrezaei/newsbrief/config"
	"github.com/mhrezaei/newsbrief/internal/agent"
	"github.com/mhrezaei/newsbrief/internal/scheduler"
	"github.com/mhrezaei/newsbrief/internal/store"
	"github.com/mhrezaei/newsbrief/provider"
	"github.com/mhrezaei/newsbrief/tools/web_fetch"
	"github.com/mhrezaei/newsbrief/tools/web_search"
)

// Run wires the whole service and serves the HTTP API until the listener
// stops: capability clients, the run controller, the store, the
// subscription scheduler and the echo routes.
func Run(cfg *config.Config) error {
	ctx := context.Background()

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}
	searcher, err := web_search.NewWebSearcher(cfg.Search)
	if err != nil {
		return err
	}
	fetcher, err := web_fetch.NewWebFetcher(cfg.Fetch)
	if err != nil {
		return err
	}
	controller := agent.NewController(llm, searcher, fetcher, cfg)

	st, err := store.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(st, controller, cfg.Scheduler.TickInterval)
		sched.Start()
		defer sched.Stop()
	}

	e := newEcho()
	registerRoutes(e, controller, st, []byte(cfg.Server.JWTSecret))

	log.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// newEcho builds the echo instance with recovery, CORS and a unified JSON
// error handler that logs every failed request.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))
	return e
}

// registerRoutes attaches every handler. An empty secret leaves the /api
// group unauthenticated.
func registerRoutes(e *echo.Echo, runner scheduler.Runner, st store.Store, secret []byte) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	if len(secret) > 0 {
		api.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	}

	rh := &RunsHandler{Store: st, Runner: runner}
	rh.Register(api.Group("/runs"))

	sh := &SubscriptionsHandler{Store: st}
	sh.Register(api.Group("/subscriptions"))
}
