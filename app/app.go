// Package app assembles the study bot: configuration, storage, the dialog
// manager, and the Telegram runtime options consumed by the shared runner.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"studybot/catalog/postgres"
	"studybot/core/bootstrap"
	"studybot/core/logger"
	tg "studybot/core/telegram"
	"studybot/core/telegram/router"
	"studybot/core/telegram/state"
	"studybot/guard"
	"studybot/handlers"
)

// App holds the assembled bot ready to produce run options.
type App struct {
	cfg *Config
	db  *sqlx.DB

	registry *tg.Registry
	fsm      *state.Manager
	handlers *handlers.Handlers
}

// New bootstraps infrastructure and wires every handler. The returned App
// owns the database handle until the bot stops.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	g := guard.Parse(cfg.Telegram.AdminIDs)
	if g.Misconfigured() {
		logger.L.With("component", "app").Warn("admin allow-list is empty or malformed; admin commands disabled",
			slog.String("event", "guard.misconfigured"),
		)
	}

	store := postgres.New(res.DB)
	fsm := state.NewManager()
	h := handlers.New(store, fsm, g, cfg.Catalog.AdminPageSize, cfg.Catalog.BrowsePageSize)

	reg := tg.NewRegistry()
	if err := h.Register(reg); err != nil {
		_ = res.DB.Close()
		return nil, fmt.Errorf("app: handler registration failed: %w", err)
	}
	if err := fsm.Bind(h.StepHandlers(), h.StateCorrupt); err != nil {
		_ = res.DB.Close()
		return nil, err
	}

	return &App{
		cfg:      cfg,
		db:       res.DB,
		registry: reg,
		fsm:      fsm,
		handlers: h,
	}, nil
}

// TelegramRunOptions builds the runtime options for the shared runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminAllow:    a.handlers.AdminAllow,
		OnAdminReject: a.handlers.AdminReject,
		FSM:           a.fsm,
	})
	routes = append(routes, router.TextRoutes(a.fsm, a.registry, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(_ context.Context, _ tg.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
