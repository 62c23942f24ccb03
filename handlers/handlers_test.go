package handlers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"studybot/catalog"
	"studybot/core/telegram/state"
	"studybot/guard"
)

const (
	adminID = int64(42)
	chID    = int64(100)
)

type fakeStore struct {
	entities map[string][]catalog.Entity

	addErr error
	delErr error

	added      []catalog.Entity
	countCalls int
	listCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entities: make(map[string][]catalog.Entity)}
}

func (s *fakeStore) seed(catKey string, n int) {
	for i := 1; i <= n; i++ {
		s.entities[catKey] = append(s.entities[catKey], catalog.Entity{
			ID:          int64(i),
			Name:        fmt.Sprintf("item-%d", i),
			Description: fmt.Sprintf("desc-%d", i),
			Link:        "https://example.org",
		})
	}
}

func (s *fakeStore) Add(_ context.Context, cat catalog.Category, e catalog.Entity) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, e)
	s.entities[cat.Key] = append(s.entities[cat.Key], e)
	return nil
}

func (s *fakeStore) DeleteByID(_ context.Context, cat catalog.Category, id int64) error {
	if s.delErr != nil {
		return s.delErr
	}
	for i, e := range s.entities[cat.Key] {
		if e.ID == id {
			s.entities[cat.Key] = append(s.entities[cat.Key][:i], s.entities[cat.Key][i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *fakeStore) DeleteByName(_ context.Context, cat catalog.Category, name string) error {
	if s.delErr != nil {
		return s.delErr
	}
	for i, e := range s.entities[cat.Key] {
		if e.Name == name {
			s.entities[cat.Key] = append(s.entities[cat.Key][:i], s.entities[cat.Key][i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *fakeStore) UpdateByID(_ context.Context, cat catalog.Category, e catalog.Entity) error {
	for i, have := range s.entities[cat.Key] {
		if have.ID == e.ID {
			s.entities[cat.Key][i] = e
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *fakeStore) UpdateByName(_ context.Context, cat catalog.Category, name string, e catalog.Entity) error {
	for i, have := range s.entities[cat.Key] {
		if have.Name == name {
			s.entities[cat.Key][i] = e
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *fakeStore) ListPage(_ context.Context, cat catalog.Category, offset, limit int) ([]catalog.Entity, error) {
	s.listCalls++
	all := s.entities[cat.Key]
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeStore) ListAll(_ context.Context, cat catalog.Category) ([]catalog.Entity, error) {
	return s.entities[cat.Key], nil
}

func (s *fakeStore) Count(_ context.Context, cat catalog.Category) (int, error) {
	s.countCalls++
	return len(s.entities[cat.Key]), nil
}

type recordedMessage struct {
	what interface{}
	opts []interface{}
}

// fakeContext covers only the tele.Context surface the handlers touch.
type fakeContext struct {
	tele.Context

	user     *tele.User
	chat     *tele.Chat
	text     string
	callback *tele.Callback
	message  *tele.Message

	kv        map[string]interface{}
	sent      []recordedMessage
	edits     []recordedMessage
	responses []*tele.CallbackResponse
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{
		user: &tele.User{ID: userID, FirstName: "Test"},
		chat: &tele.Chat{ID: chID},
		kv:   make(map[string]interface{}),
	}
}

func (f *fakeContext) withCallback(unique, payload string) *fakeContext {
	data := "\f" + unique
	if payload != "" {
		data += "|" + payload
	}
	f.message = &tele.Message{ID: 555, Chat: f.chat}
	f.callback = &tele.Callback{Data: data, Unique: unique, Message: f.message}
	return f
}

func (f *fakeContext) withText(text string) *fakeContext {
	f.text = text
	return f
}

func (f *fakeContext) Sender() *tele.User    { return f.user }
func (f *fakeContext) Chat() *tele.Chat      { return f.chat }
func (f *fakeContext) Text() string          { return f.text }
func (f *fakeContext) Update() tele.Update   { return tele.Update{ID: 1} }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }
func (f *fakeContext) Message() *tele.Message   { return f.message }

func (f *fakeContext) Get(key string) interface{}      { return f.kv[key] }
func (f *fakeContext) Set(key string, v interface{})   { f.kv[key] = v }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, recordedMessage{what: what, opts: opts})
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.edits = append(f.edits, recordedMessage{what: what, opts: opts})
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		resp = []*tele.CallbackResponse{{}}
	}
	f.responses = append(f.responses, resp[0])
	return nil
}

func (f *fakeContext) sentTexts() []string {
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		if s, ok := m.what.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func markupOf(t *testing.T, m recordedMessage) *tele.ReplyMarkup {
	t.Helper()
	for _, opt := range m.opts {
		if rm, ok := opt.(*tele.ReplyMarkup); ok {
			return rm
		}
	}
	t.Fatal("no reply markup attached")
	return nil
}

func newTestHandlers(store *fakeStore) (*Handlers, *state.Manager) {
	fsm := state.NewManager()
	h := New(store, fsm, guard.Parse("42"), DefaultAdminPageSize, DefaultBrowsePageSize)
	return h, fsm
}

func mustCategory(t *testing.T, key string) catalog.Category {
	t.Helper()
	cat, ok := catalog.Lookup(key)
	require.True(t, ok)
	return cat
}

func TestDeleteItemFallsBackToPreviousPage(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 11)
	h, _ := newTestHandlers(store)
	cat := mustCategory(t, catalog.KeyCourse)

	c := newFakeContext(adminID).withCallback("del_course_by_id", "11:page:2")
	require.NoError(t, h.deleteItemHandler(cat)(c))

	assert.Len(t, store.entities[catalog.KeyCourse], 10)
	require.NotEmpty(t, c.responses)
	assert.Contains(t, c.responses[0].Text, "ID: 11")

	require.Len(t, c.edits, 1)
	assert.Equal(t, cat.DeletePrompt, c.edits[0].what)

	rows := markupOf(t, c.edits[0]).InlineKeyboard
	// 10 items chunked two per row, then the page indicator, then the jump row.
	require.Len(t, rows, 7)
	assert.Equal(t, "1/1", rows[5][0].Text)
}

func TestDeleteLastItemShowsEmptyState(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyResource, 1)
	h, _ := newTestHandlers(store)
	cat := mustCategory(t, catalog.KeyResource)

	c := newFakeContext(adminID).withCallback("del_resource_by_id", "1:page:1")
	require.NoError(t, h.deleteItemHandler(cat)(c))

	assert.Empty(t, store.entities[catalog.KeyResource])
	require.Len(t, c.edits, 1)
	assert.Equal(t, cat.EmptyText, c.edits[0].what)
	require.NotEmpty(t, c.sentTexts())
	assert.Equal(t, categoryTexts[cat.Key].manageTitle, c.sentTexts()[0])
}

func TestDeleteMissingItemAlertsWithoutRerender(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 2)
	h, _ := newTestHandlers(store)
	cat := mustCategory(t, catalog.KeyCourse)

	c := newFakeContext(adminID).withCallback("del_course_by_id", "7:page:1")
	require.NoError(t, h.deleteItemHandler(cat)(c))

	require.Len(t, c.responses, 1)
	assert.Contains(t, c.responses[0].Text, "Не удалось удалить")
	assert.Empty(t, c.edits)
	assert.Len(t, store.entities[catalog.KeyCourse], 2)
}

func TestDeleteByNameForTerms(t *testing.T) {
	store := newFakeStore()
	store.entities[catalog.KeyTerm] = []catalog.Entity{
		{Name: "API", Description: "interface"},
		{Name: "http://x:y", Description: "colons"},
	}
	h, _ := newTestHandlers(store)
	cat := mustCategory(t, catalog.KeyTerm)

	c := newFakeContext(adminID).withCallback("del_term_by_name", "http://x:y:page:1")
	require.NoError(t, h.deleteItemHandler(cat)(c))

	require.Len(t, store.entities[catalog.KeyTerm], 1)
	assert.Equal(t, "API", store.entities[catalog.KeyTerm][0].Name)
}

func TestDeleteRejectsNonAdmin(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 3)
	h, _ := newTestHandlers(store)
	cat := mustCategory(t, catalog.KeyCourse)

	c := newFakeContext(7).withCallback("del_course_by_id", "1:page:1")
	require.NoError(t, h.deleteItemHandler(cat)(c))

	require.Len(t, c.responses, 1)
	assert.Equal(t, textAccessDenied, c.responses[0].Text)
	assert.Len(t, store.entities[catalog.KeyCourse], 3)
}

func TestPageJumpValidatesBeforeStoreReads(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 12)
	h, fsm := newTestHandlers(store)

	begin := func() {
		fsm.Begin(adminID, chID, state.StepAwaitingPageNumber, catalog.KeyCourse)
		fsm.Update(adminID, chID, func(s *state.Session) {
			s.Mode = state.ModeDelete
			s.PromptChatID = chID
			s.PromptMessageID = 555
		})
	}

	begin()
	c := newFakeContext(adminID).withText("abc")
	require.NoError(t, h.pageNumberInput(c))
	assert.Equal(t, []string{textBadPageFormat}, c.sentTexts())
	assert.Zero(t, store.countCalls)
	assert.True(t, fsm.InProgress(adminID, chID))

	c = newFakeContext(adminID).withText("0")
	require.NoError(t, h.pageNumberInput(c))
	assert.Equal(t, []string{textDeleteBadPage}, c.sentTexts())
	assert.Zero(t, store.countCalls)
	assert.True(t, fsm.InProgress(adminID, chID))

	// 12 entries over pages of 10 give 2 pages; 99 is out of range.
	c = newFakeContext(adminID).withText("99")
	require.NoError(t, h.pageNumberInput(c))
	require.Len(t, c.sentTexts(), 1)
	assert.Contains(t, c.sentTexts()[0], "от 1 до 2")
	assert.True(t, fsm.InProgress(adminID, chID))
}

func TestPageJumpWithMissingScratchReportsStateError(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 12)
	h, fsm := newTestHandlers(store)

	// A delete prompt without the stored message reference cannot edit
	// anything back; the dialog must end with a state error.
	fsm.Begin(adminID, chID, state.StepAwaitingPageNumber, catalog.KeyCourse)
	fsm.Update(adminID, chID, func(s *state.Session) { s.Mode = state.ModeDelete })

	c := newFakeContext(adminID).withText("1")
	require.NoError(t, h.pageNumberInput(c))

	assert.Equal(t, []string{textStateError}, c.sentTexts())
	assert.False(t, fsm.InProgress(adminID, chID))
	assert.Zero(t, store.countCalls)
}

func TestWizardTermSkipsLinkStep(t *testing.T) {
	store := newFakeStore()
	h, fsm := newTestHandlers(store)

	fsm.Begin(adminID, chID, state.StepAwaitingName, catalog.KeyTerm)

	c := newFakeContext(adminID).withText("API")
	require.NoError(t, h.wizardName(c))
	assert.Equal(t, []string{textAskDescription}, c.sentTexts())

	c = newFakeContext(adminID).withText("Программный интерфейс")
	require.NoError(t, h.wizardDescription(c))

	require.Len(t, store.added, 1)
	assert.Equal(t, "API", store.added[0].Name)
	assert.Empty(t, store.added[0].Link)
	assert.False(t, fsm.InProgress(adminID, chID))
	require.NotEmpty(t, c.sentTexts())
	assert.Contains(t, c.sentTexts()[0], "добавлен")
}

func TestWizardRejectsEmptyName(t *testing.T) {
	store := newFakeStore()
	h, fsm := newTestHandlers(store)
	fsm.Begin(adminID, chID, state.StepAwaitingName, catalog.KeyCourse)

	c := newFakeContext(adminID).withText("   ")
	require.NoError(t, h.wizardName(c))

	assert.Equal(t, []string{textNameEmpty}, c.sentTexts())
	sess, ok := fsm.Get(adminID, chID)
	require.True(t, ok)
	assert.Equal(t, state.StepAwaitingName, sess.Step)
}

func TestWizardLinkValidation(t *testing.T) {
	store := newFakeStore()
	h, fsm := newTestHandlers(store)

	fsm.Begin(adminID, chID, state.StepAwaitingLink, catalog.KeyCourse)
	fsm.Update(adminID, chID, func(s *state.Session) {
		s.Name = "Алгоритмы"
		s.Description = "Курс"
	})

	c := newFakeContext(adminID).withText("ftp://mirror")
	require.NoError(t, h.wizardLink(c))
	assert.Equal(t, []string{textLinkBadPrefix}, c.sentTexts())
	assert.Empty(t, store.added)
	assert.True(t, fsm.InProgress(adminID, chID))

	c = newFakeContext(adminID).withText("https://edu.example.org")
	require.NoError(t, h.wizardLink(c))
	require.Len(t, store.added, 1)
	assert.Equal(t, "https://edu.example.org", store.added[0].Link)
	assert.False(t, fsm.InProgress(adminID, chID))
}

func TestWizardDuplicateName(t *testing.T) {
	store := newFakeStore()
	store.addErr = catalog.ErrAlreadyExists
	h, fsm := newTestHandlers(store)

	fsm.Begin(adminID, chID, state.StepAwaitingDescription, catalog.KeyTerm)
	fsm.Update(adminID, chID, func(s *state.Session) { s.Name = "API" })

	c := newFakeContext(adminID).withText("повтор")
	require.NoError(t, h.wizardDescription(c))

	require.NotEmpty(t, c.sentTexts())
	assert.Contains(t, c.sentTexts()[0], "Не удалось добавить")
	assert.False(t, fsm.InProgress(adminID, chID))
}

func TestBrowsePageNumberInput(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyTerm, 7)
	h, fsm := newTestHandlers(store)

	begin := func() {
		fsm.Begin(adminID, chID, state.StepAwaitingPageNumber, catalog.KeyTerm)
		fsm.Update(adminID, chID, func(s *state.Session) { s.Mode = state.ModeBrowse })
	}

	begin()
	c := newFakeContext(adminID).withText("abc")
	require.NoError(t, h.pageNumberInput(c))
	assert.Equal(t, []string{textBrowseBadPage}, c.sentTexts())
	assert.True(t, fsm.InProgress(adminID, chID))

	c = newFakeContext(adminID).withText("2")
	require.NoError(t, h.pageNumberInput(c))
	assert.False(t, fsm.InProgress(adminID, chID))
	require.NotEmpty(t, c.sentTexts())
	assert.True(t, strings.Contains(c.sentTexts()[0], "Страница 2 из 2"))
}

func TestGotoDeletePromptOpensDialog(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 3)
	h, fsm := newTestHandlers(store)

	c := newFakeContext(adminID).withCallback("goto_delete_page", catalog.KeyCourse)
	require.NoError(t, h.gotoDeletePrompt(c))

	sess, ok := fsm.Get(adminID, chID)
	require.True(t, ok)
	assert.Equal(t, state.StepAwaitingPageNumber, sess.Step)
	assert.Equal(t, state.ModeDelete, sess.Mode)
	assert.Equal(t, 555, sess.PromptMessageID)
	assert.Equal(t, chID, sess.PromptChatID)

	require.Len(t, c.edits, 1)
	assert.Equal(t, textAskPageNumber, c.edits[0].what)
}

func TestTextFallbackRoutesMenus(t *testing.T) {
	store := newFakeStore()
	store.seed(catalog.KeyCourse, 2)
	h, _ := newTestHandlers(store)

	c := newFakeContext(7).withText(categoryTexts[catalog.KeyCourse].browseLabel)
	require.NoError(t, h.TextFallback(c))
	require.NotEmpty(t, c.sentTexts())
	assert.Contains(t, c.sentTexts()[0], "Страница 1 из 1")

	// Admin-only labels bounce non-admins with the denial text.
	c = newFakeContext(7).withText(categoryTexts[catalog.KeyCourse].manageLabel)
	require.NoError(t, h.TextFallback(c))
	assert.Equal(t, []string{textAccessDenied}, c.sentTexts())
}

func TestTermsLookupByLetter(t *testing.T) {
	store := newFakeStore()
	store.entities[catalog.KeyTerm] = []catalog.Entity{
		{Name: "API", Description: "интерфейс"},
		{Name: "Алгоритм", Description: "последовательность шагов"},
		{Name: "апдейт", Description: "обновление"},
		{Name: "Байт", Description: "восемь бит"},
	}
	h, _ := newTestHandlers(store)

	c := newFakeContext(7).withText("а")
	require.NoError(t, h.TextFallback(c))
	require.Len(t, c.sentTexts(), 1)
	assert.Contains(t, c.sentTexts()[0], "Алгоритм")
	assert.Contains(t, c.sentTexts()[0], "апдейт")
	assert.NotContains(t, c.sentTexts()[0], "Байт")

	c = newFakeContext(7).withText("z")
	require.NoError(t, h.TextFallback(c))
	require.Len(t, c.sentTexts(), 1)
	assert.Contains(t, c.sentTexts()[0], "пока нет")

	// Multi-character text that matches no menu label stays ignored.
	c = newFakeContext(7).withText("привет")
	require.NoError(t, h.TextFallback(c))
	assert.Empty(t, c.sentTexts())
}
