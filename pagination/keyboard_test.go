package pagination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybot/catalog"
)

func page1of12() ([]catalog.Entity, Page) {
	items := make([]catalog.Entity, 10)
	for i := range items {
		items[i] = catalog.Entity{ID: int64(i + 1), Name: "Курс"}
	}
	return items, Compute(12, 10, 1)
}

func TestDeleteKeyboardFirstPageLayout(t *testing.T) {
	cat := mustCategory(t, catalog.KeyCourse)
	items, page := page1of12()

	markup := DeleteKeyboard(context.Background(), cat, items, page, DefaultRowWidth)
	rows := markup.InlineKeyboard

	// 10 items at two per row, then navigation, then the jump row.
	require.Len(t, rows, 7)
	for i := 0; i < 5; i++ {
		assert.Len(t, rows[i], 2)
	}

	nav := rows[5]
	require.Len(t, nav, 2, "first page has no prev button")
	assert.Equal(t, "1/2", nav[0].Text)
	assert.Equal(t, IgnoreKey, nav[0].Unique)
	assert.Equal(t, "➡️ Далее", nav[1].Text)
	assert.Equal(t, "navigate_delete_course", nav[1].Unique)
	assert.Equal(t, "2", nav[1].Data)

	jump := rows[6]
	require.Len(t, jump, 1)
	assert.Equal(t, JumpKey, jump[0].Unique)
	assert.Equal(t, "course", jump[0].Data)
}

func TestDeleteKeyboardLastPageLayout(t *testing.T) {
	cat := mustCategory(t, catalog.KeyCourse)
	items := []catalog.Entity{{ID: 11, Name: "Сети"}, {ID: 12, Name: "Базы данных"}}
	page := Compute(12, 10, 2)

	markup := DeleteKeyboard(context.Background(), cat, items, page, DefaultRowWidth)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 3)

	itemRow := rows[0]
	require.Len(t, itemRow, 2)
	assert.Equal(t, "❌ Сети", itemRow[0].Text)
	assert.Equal(t, "del_course_by_id", itemRow[0].Unique)
	assert.Equal(t, "11:page:2", itemRow[0].Data)

	nav := rows[1]
	require.Len(t, nav, 2, "last page has no next button")
	assert.Equal(t, "⬅️ Назад", nav[0].Text)
	assert.Equal(t, "1", nav[0].Data)
	assert.Equal(t, "2/2", nav[1].Text)
}

func TestDeleteKeyboardTermUsesNameTokens(t *testing.T) {
	cat := mustCategory(t, catalog.KeyTerm)
	items := []catalog.Entity{{Name: "API"}}
	page := Compute(1, 10, 1)

	markup := DeleteKeyboard(context.Background(), cat, items, page, DefaultRowWidth)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, "del_term_by_name", btn.Unique)
	assert.Equal(t, "API:page:1", btn.Data)
}

func TestBrowseKeyboardMiddlePage(t *testing.T) {
	cat := mustCategory(t, catalog.KeyResource)
	page := Compute(15, 5, 2)

	markup := BrowseKeyboard(cat, page)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 2)

	nav := rows[0]
	require.Len(t, nav, 2)
	assert.Equal(t, "resources", nav[0].Unique)
	assert.Equal(t, "1", nav[0].Data)
	assert.Equal(t, "3", nav[1].Data)

	jump := rows[1]
	require.Len(t, jump, 1)
	assert.Equal(t, BrowseJumpPayload, jump[0].Data)
}
