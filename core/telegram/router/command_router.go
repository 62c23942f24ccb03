package router

import (
	"studybot/core/logger"
	tg "studybot/core/telegram"
	"studybot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminAllow    func(userID int64) error
	OnAdminReject func(c tele.Context, err error) error

	// FSM, when set, makes every registered command cancel the sender's
	// open dialog before the command handler runs. Commands are telebot
	// endpoints dispatched ahead of OnText, so typing /start mid-wizard
	// must abandon the wizard here, not in the text router.
	FSM FSM
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AdminOptions{
		Allow:    opts.AdminAllow,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if opts.FSM != nil {
			h = cancelDialogOnCommand(opts.FSM, h)
		}
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(adminOpts)(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	if logger.TWire != nil {
		logger.TWire.Info("tg.wire",
			slog.String("event", "complete"),
			slog.Int("commands", len(reg.Commands())),
			slog.Int("callbacks", len(reg.ListCallbacks())),
		)
	}

	return routes
}

func cancelDialogOnCommand(fsmMgr FSM, next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		chatID := int64(0)
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if fsmMgr.InProgress(userID, chatID) {
			fsmMgr.Cancel(userID, chatID)
		}
		return next(c)
	}
}
