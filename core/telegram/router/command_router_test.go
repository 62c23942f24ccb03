package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "studybot/core/telegram"
	"studybot/core/telegram/commands"
	"studybot/core/telegram/state"
)

func newOfflineBot(t *testing.T) *tele.Bot {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)
	return bot
}

func textUpdate(id int, userID, chatID int64, text string) tele.Update {
	return tele.Update{
		ID: id,
		Message: &tele.Message{
			ID:     id * 10,
			Text:   text,
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: chatID},
		},
	}
}

// A command typed mid-wizard is dispatched straight to its endpoint, so the
// cancel has to happen in the command chain itself.
func TestCommandCancelsOpenDialog(t *testing.T) {
	bot := newOfflineBot(t)
	fsm := state.NewManager()
	reg := tg.NewRegistry()

	var startRan bool
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(c tele.Context) error { startRan = true; return nil },
		Description: "start",
	})

	for _, route := range CommandRoutes(reg, CommandRouteOptions{FSM: fsm}) {
		bot.Handle(route.Endpoint, route.Handler)
	}
	for _, route := range TextRoutes(fsm, reg, TextOptions{}) {
		bot.Handle(route.Endpoint, route.Handler)
	}

	fsm.Begin(7, 1, state.StepAwaitingName, "course")
	require.True(t, fsm.InProgress(7, 1))

	bot.ProcessUpdate(textUpdate(1, 7, 1, "/start"))

	assert.True(t, startRan, "command handler must still run")
	assert.False(t, fsm.InProgress(7, 1), "open dialog must be cancelled by the command")
}

// The same user's dialog in another chat is untouched by a command.
func TestCommandCancelIsScopedToChat(t *testing.T) {
	bot := newOfflineBot(t)
	fsm := state.NewManager()
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(c tele.Context) error { return nil },
		Description: "start",
	})
	for _, route := range CommandRoutes(reg, CommandRouteOptions{FSM: fsm}) {
		bot.Handle(route.Endpoint, route.Handler)
	}

	fsm.Begin(7, 1, state.StepAwaitingName, "course")
	fsm.Begin(7, 2, state.StepAwaitingName, "resource")

	bot.ProcessUpdate(textUpdate(2, 7, 1, "/start"))

	assert.False(t, fsm.InProgress(7, 1))
	assert.True(t, fsm.InProgress(7, 2))
}

// Non-command text still reaches the open dialog through the text router.
func TestTextRoutesDispatchOpenDialog(t *testing.T) {
	bot := newOfflineBot(t)
	fsm := state.NewManager()
	reg := tg.NewRegistry()

	var answered string
	table := map[state.Step]tele.HandlerFunc{
		state.StepAwaitingName:        func(c tele.Context) error { answered = c.Text(); return nil },
		state.StepAwaitingDescription: func(c tele.Context) error { return nil },
		state.StepAwaitingLink:        func(c tele.Context) error { return nil },
		state.StepAwaitingPageNumber:  func(c tele.Context) error { return nil },
	}
	require.NoError(t, fsm.Bind(table, nil))

	for _, route := range TextRoutes(fsm, reg, TextOptions{}) {
		bot.Handle(route.Endpoint, route.Handler)
	}

	fsm.Begin(7, 1, state.StepAwaitingName, "course")
	bot.ProcessUpdate(textUpdate(3, 7, 1, "Алгоритмы"))

	assert.Equal(t, "Алгоритмы", answered)
}
