package state

import (
	"fmt"
	"sync"

	"studybot/core/logger"
	tghelpers "studybot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Manager owns dialog sessions keyed by (user, chat) and dispatches inbound
// text to the handler bound to the session's current step.
type Manager struct {
	mu       sync.RWMutex
	sessions map[sessionKey]*Session

	handlers  map[Step]tele.HandlerFunc
	onCorrupt tele.HandlerFunc
}

// NewManager constructs an empty Manager. Bind must be called before the
// manager is wired into the text router.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[sessionKey]*Session),
	}
}

// Bind installs the step dispatch table. Every step declared in Steps must
// have a handler; a gap is a wiring bug surfaced at startup rather than on
// the first message that hits it. onCorrupt, if set, is invoked after a
// session with an unknown step has been cleared.
func (m *Manager) Bind(handlers map[Step]tele.HandlerFunc, onCorrupt tele.HandlerFunc) error {
	for _, st := range Steps {
		if handlers[st] == nil {
			return fmt.Errorf("state: no handler bound for step %q", st)
		}
	}
	for st := range handlers {
		if st == StepIdle {
			return fmt.Errorf("state: handler bound for idle step")
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = handlers
	m.onCorrupt = onCorrupt
	return nil
}

// Begin replaces any existing session with a fresh one at the given step.
func (m *Manager) Begin(userID, chatID int64, step Step, category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionKey{userID, chatID}] = &Session{
		Step:     step,
		Category: category,
	}
}

// Get returns a copy of the session for (user, chat) if one exists.
func (m *Manager) Get(userID, chatID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[sessionKey{userID, chatID}]; ok {
		return *sess, true
	}
	return Session{Step: StepIdle}, false
}

// Update mutates the session for (user, chat) under the manager lock.
// It is a no-op when no session exists.
func (m *Manager) Update(userID, chatID int64, fn func(*Session)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[sessionKey{userID, chatID}]; ok {
		fn(sess)
	}
}

// Transition moves the session for (user, chat) to the given step,
// keeping the collected scratch data.
func (m *Manager) Transition(userID, chatID int64, step Step) {
	m.Update(userID, chatID, func(s *Session) {
		s.Step = step
	})
}

// Clear removes the session for (user, chat).
func (m *Manager) Clear(userID, chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionKey{userID, chatID})
}

// Cancel abandons the open dialog for (user, chat). It is Clear under the
// name the text router expects.
func (m *Manager) Cancel(userID, chatID int64) {
	m.Clear(userID, chatID)
}

// InProgress reports whether (user, chat) has an open dialog.
func (m *Manager) InProgress(userID, chatID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionKey{userID, chatID}]
	return ok && sess.Step != StepIdle
}

// ManagerHandler dispatches the update to the handler bound to the current
// step. A session whose step has no handler is treated as corrupted: the
// session is cleared and the onCorrupt handler, if any, is invoked.
func (m *Manager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	chatID := int64(0)
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}

	sess, ok := m.Get(userID, chatID)
	if !ok || sess.Step == StepIdle {
		return nil
	}

	ctx := tghelpers.BuildContext(c)

	m.mu.RLock()
	handler := m.handlers[sess.Step]
	onCorrupt := m.onCorrupt
	m.mu.RUnlock()

	if handler == nil {
		m.Clear(userID, chatID)
		logger.Warn(ctx, "tg", "fsm.corrupt",
			slog.Int64("user_id", userID),
			slog.Int64("chat_id", chatID),
			slog.String("state", string(sess.Step)),
		)
		if onCorrupt != nil {
			return onCorrupt(c)
		}
		return nil
	}

	logger.Debug(ctx, "tg", "fsm.step",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("chat_id", chatID),
		slog.String("state", string(sess.Step)),
	)
	return handler(c)
}
