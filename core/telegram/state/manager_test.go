package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func fullTable() map[Step]tele.HandlerFunc {
	return map[Step]tele.HandlerFunc{
		StepAwaitingName:        noop,
		StepAwaitingDescription: noop,
		StepAwaitingLink:        noop,
		StepAwaitingPageNumber:  noop,
	}
}

func TestBindRequiresEveryStep(t *testing.T) {
	m := NewManager()

	table := fullTable()
	delete(table, StepAwaitingLink)
	err := m.Bind(table, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(StepAwaitingLink))

	require.NoError(t, NewManager().Bind(fullTable(), nil))
}

func TestBindRejectsIdleHandler(t *testing.T) {
	table := fullTable()
	table[StepIdle] = noop
	err := NewManager().Bind(table, nil)
	require.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	m := NewManager()

	assert.False(t, m.InProgress(1, 10))

	m.Begin(1, 10, StepAwaitingName, "course")
	assert.True(t, m.InProgress(1, 10))
	assert.False(t, m.InProgress(1, 20), "sessions are keyed by chat too")
	assert.False(t, m.InProgress(2, 10))

	sess, ok := m.Get(1, 10)
	require.True(t, ok)
	assert.Equal(t, StepAwaitingName, sess.Step)
	assert.Equal(t, "course", sess.Category)

	m.Update(1, 10, func(s *Session) { s.Name = "Алгоритмы" })
	m.Transition(1, 10, StepAwaitingDescription)

	sess, ok = m.Get(1, 10)
	require.True(t, ok)
	assert.Equal(t, StepAwaitingDescription, sess.Step)
	assert.Equal(t, "Алгоритмы", sess.Name)

	m.Cancel(1, 10)
	assert.False(t, m.InProgress(1, 10))
	_, ok = m.Get(1, 10)
	assert.False(t, ok)
}

func TestBeginReplacesOpenSession(t *testing.T) {
	m := NewManager()
	m.Begin(1, 10, StepAwaitingName, "course")
	m.Update(1, 10, func(s *Session) { s.Name = "Go" })

	m.Begin(1, 10, StepAwaitingPageNumber, "resource")
	sess, ok := m.Get(1, 10)
	require.True(t, ok)
	assert.Equal(t, StepAwaitingPageNumber, sess.Step)
	assert.Equal(t, "resource", sess.Category)
	assert.Empty(t, sess.Name)
}

func TestUpdateWithoutSessionIsNoop(t *testing.T) {
	m := NewManager()
	m.Update(5, 50, func(s *Session) { s.Name = "x" })
	_, ok := m.Get(5, 50)
	assert.False(t, ok)
}

type stubContext struct {
	tele.Context
	user *tele.User
	chat *tele.Chat
	kv   map[string]interface{}
}

func (s *stubContext) Sender() *tele.User            { return s.user }
func (s *stubContext) Chat() *tele.Chat              { return s.chat }
func (s *stubContext) Update() tele.Update           { return tele.Update{ID: 1} }
func (s *stubContext) Get(k string) interface{}      { return s.kv[k] }
func (s *stubContext) Set(k string, v interface{})   { s.kv[k] = v }

func newStubContext(userID, chatID int64) *stubContext {
	return &stubContext{
		user: &tele.User{ID: userID},
		chat: &tele.Chat{ID: chatID},
		kv:   make(map[string]interface{}),
	}
}

// A session whose step lost its handler (e.g. after a rename across a
// redeploy) must be cleared and answered by the corrupt handler, never
// dispatched or left open.
func TestManagerHandlerClearsCorruptSession(t *testing.T) {
	m := NewManager()

	var corruptRan bool
	require.NoError(t, m.Bind(fullTable(), func(tele.Context) error {
		corruptRan = true
		return nil
	}))

	m.Begin(1, 10, Step("renamed_step"), "course")
	require.NoError(t, m.ManagerHandler(newStubContext(1, 10)))

	assert.True(t, corruptRan)
	assert.False(t, m.InProgress(1, 10))
	_, ok := m.Get(1, 10)
	assert.False(t, ok)
}

func TestManagerHandlerDispatchesBoundStep(t *testing.T) {
	m := NewManager()

	var got string
	table := fullTable()
	table[StepAwaitingName] = func(c tele.Context) error {
		sess, _ := m.Get(1, 10)
		got = sess.Category
		return nil
	}
	require.NoError(t, m.Bind(table, nil))

	m.Begin(1, 10, StepAwaitingName, "resource")
	require.NoError(t, m.ManagerHandler(newStubContext(1, 10)))

	assert.Equal(t, "resource", got)
	assert.True(t, m.InProgress(1, 10), "dispatch alone must not clear the session")
}
