package pagination

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"studybot/catalog"
	"studybot/core/telegram/keyboard"
)

// DefaultRowWidth is how many item buttons share a row in delete lists.
const DefaultRowWidth = 2

// DeleteKeyboard renders the admin delete list for one page: item buttons
// chunked rowWidth per row, a navigation row, and a jump-to-page row.
func DeleteKeyboard(ctx context.Context, cat catalog.Category, items []catalog.Entity, page Page, rowWidth int) *tele.ReplyMarkup {
	if rowWidth < 1 {
		rowWidth = DefaultRowWidth
	}
	markup := &tele.ReplyMarkup{}

	verb := DeleteVerb(cat)
	itemBtns := make([]tele.Btn, 0, len(items))
	for _, item := range items {
		payload := ItemPayload(item.Identifier(cat), page.Number)
		CheckSize(ctx, verb, payload)
		itemBtns = append(itemBtns, markup.Data("❌ "+item.Name, verb, payload))
	}
	rows := keyboard.ChunkButtons(itemBtns, rowWidth)

	var nav []tele.Btn
	navKey := NavKey(cat.Key)
	if page.HasPrev {
		nav = append(nav, markup.Data("⬅️ Назад", navKey, strconv.Itoa(page.Number-1)))
	}
	nav = append(nav, markup.Data(
		strconv.Itoa(page.Number)+"/"+strconv.Itoa(page.TotalPages),
		IgnoreKey,
	))
	if page.HasNext {
		nav = append(nav, markup.Data("➡️ Далее", navKey, strconv.Itoa(page.Number+1)))
	}
	rows = append(rows, nav)

	rows = append(rows, []tele.Btn{
		markup.Data("🔢 Перейти на страницу", JumpKey, cat.Key),
	})

	teleRows := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		teleRows = append(teleRows, markup.Row(row...))
	}
	markup.Inline(teleRows...)
	return markup
}

// BrowseKeyboard renders the public list navigation: prev/next on one row
// and the jump prompt on its own row.
func BrowseKeyboard(cat catalog.Category, page Page) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	key := BrowseKey(cat)

	var nav []tele.Btn
	if page.HasPrev {
		nav = append(nav, markup.Data("⬅️ Назад", key, strconv.Itoa(page.Number-1)))
	}
	if page.HasNext {
		nav = append(nav, markup.Data("➡️ Вперёд", key, strconv.Itoa(page.Number+1)))
	}
	jump := markup.Data("🔢 Перейти к странице", key, BrowseJumpPayload)

	var rows []tele.Row
	if len(nav) > 0 {
		rows = append(rows, markup.Row(nav...))
	}
	rows = append(rows, markup.Row(jump))
	markup.Inline(rows...)
	return markup
}
