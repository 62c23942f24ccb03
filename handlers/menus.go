package handlers

import (
	tele "gopkg.in/telebot.v4"

	"studybot/catalog"
	"studybot/core/telegram/keyboard"
)

// mainMenu is the public reply keyboard: one browse button per category.
func mainMenu() *tele.ReplyMarkup {
	rows := make([][]string, 0, len(catalog.All()))
	for _, cat := range catalog.All() {
		rows = append(rows, []string{categoryTexts[cat.Key].browseLabel})
	}
	return keyboard.ReplyButtons(rows...)
}

// adminMenu lists per-category management entries plus the way back.
func adminMenu() *tele.ReplyMarkup {
	rows := make([][]string, 0, len(catalog.All())+1)
	for _, cat := range catalog.All() {
		rows = append(rows, []string{categoryTexts[cat.Key].manageLabel})
	}
	rows = append(rows, []string{labelBackToMain})
	return keyboard.ReplyButtons(rows...)
}

// manageMenu is the add/delete menu of one category.
func manageMenu(cat catalog.Category) *tele.ReplyMarkup {
	ui := categoryTexts[cat.Key]
	return keyboard.ReplyButtons(
		[]string{ui.addLabel},
		[]string{ui.deleteLabel},
		[]string{labelBackToAdmin},
	)
}

// termsSearchMenu offers the two public term lookup modes.
func termsSearchMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("🔤 Поиск по букве", cbTermsByLetter),
		markup.Data("📄 Все термины", cbTermsAll),
	))
	return markup
}
