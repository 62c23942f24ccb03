package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	tele "gopkg.in/telebot.v4"

	"studybot/catalog"
	"studybot/core/telegram/callbacks"
	"studybot/core/telegram/format"
	tghelpers "studybot/core/telegram/helpers"
	"studybot/core/telegram/state"
	"studybot/pagination"
)

// Start greets the user and shows the main menu.
func (h *Handlers) Start(c tele.Context) error {
	name := "студент"
	if sender := c.Sender(); sender != nil && sender.FirstName != "" {
		name = sender.FirstName
	}
	return tghelpers.SendText(c, greeting(name), &tele.SendOptions{ReplyMarkup: mainMenu()})
}

// Help lists available commands.
func (h *Handlers) Help(c tele.Context) error {
	return tghelpers.SendMD(c, textHelp)
}

// Support points at the administrator.
func (h *Handlers) Support(c tele.Context) error {
	return tghelpers.SendMD(c, textSupport)
}

// About describes the bot.
func (h *Handlers) About(c tele.Context) error {
	return tghelpers.SendMD(c, textAbout)
}

// termsMenu offers the term lookup modes.
func (h *Handlers) termsMenu(c tele.Context) error {
	return tghelpers.SendText(c, textTermsMenu, &tele.SendOptions{ReplyMarkup: termsSearchMenu()})
}

func (h *Handlers) termsByLetter(c tele.Context) error {
	return tghelpers.SendText(c, textTermsByLetter)
}

func (h *Handlers) termsAll(c tele.Context) error {
	cat, _ := catalog.Lookup(catalog.KeyTerm)
	ctx := tghelpers.WithHandler(c, "terms.all")

	count, err := h.store.Count(ctx, cat)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}
	if count == 0 {
		return tghelpers.SendText(c, textTermsEmpty)
	}
	return h.sendBrowsePage(c, cat, 1)
}

// groupBlocks sends group info as MarkdownV2 blocks without pagination.
func (h *Handlers) groupBlocks(c tele.Context) error {
	cat, _ := catalog.Lookup(catalog.KeyGroup)
	ctx := tghelpers.WithHandler(c, "browse.group")

	groups, err := h.store.ListAll(ctx, cat)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}
	if len(groups) == 0 {
		return tghelpers.SendText(c, textGroupsEmpty)
	}

	const blockSize = 5
	for i := 0; i < len(groups); i += blockSize {
		end := i + blockSize
		if end > len(groups) {
			end = len(groups)
		}
		parts := make([]string, 0, end-i)
		for _, g := range groups[i:end] {
			parts = append(parts, fmt.Sprintf(
				"*%s*\n%s\n[Ссылка](%s)",
				format.EscapeMarkdownV2(g.Name),
				format.EscapeMarkdownV2(g.Description),
				format.EscapeMarkdownV2(g.Link),
			))
		}
		if err := tghelpers.SendMDV2(c, strings.Join(parts, "\n\n")); err != nil {
			return err
		}
	}
	return nil
}

// termsForLetter lists every term starting with the given letter. The
// dictionary is small, so filtering happens in memory over the full list.
func (h *Handlers) termsForLetter(c tele.Context, letter rune) error {
	cat, _ := catalog.Lookup(catalog.KeyTerm)
	ctx := tghelpers.WithHandler(c, "terms.letter")

	terms, err := h.store.ListAll(ctx, cat)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}

	ui := categoryTexts[cat.Key]
	var parts []string
	for _, term := range terms {
		runes := []rune(term.Name)
		if len(runes) == 0 {
			continue
		}
		if unicode.ToLower(runes[0]) != unicode.ToLower(letter) {
			continue
		}
		parts = append(parts, ui.formatEntity(term))
	}
	if len(parts) == 0 {
		return tghelpers.SendText(c, fmt.Sprintf(textTermsLetterEmpty, string(letter)))
	}
	return tghelpers.SendText(c, strings.Join(parts, "\n\n"))
}

// sendBrowsePage sends one public page of a category as a formatted text
// block with navigation buttons.
func (h *Handlers) sendBrowsePage(c tele.Context, cat catalog.Category, requested int) error {
	ctx := tghelpers.WithHandler(c, "browse."+cat.Key)

	count, err := h.store.Count(ctx, cat)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}
	if count == 0 {
		return tghelpers.SendText(c, cat.EmptyText)
	}

	page := pagination.Compute(count, h.browsePageSize, requested)
	items, err := h.store.ListPage(ctx, cat, page.Offset, h.browsePageSize)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}

	ui := categoryTexts[cat.Key]
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, ui.formatEntity(item))
	}
	text := strings.Join(parts, "\n\n") + pageFooter(page.Number, page.TotalPages)

	return tghelpers.SendText(c, text, &tele.SendOptions{
		ReplyMarkup: pagination.BrowseKeyboard(cat, page),
	})
}

// browseNavHandler serves prev/next and the jump prompt of public lists.
func (h *Handlers) browseNavHandler(cat catalog.Category) tele.HandlerFunc {
	return func(c tele.Context) error {
		payload := callbacks.CallbackPayload(c)

		if payload == pagination.BrowseJumpPayload {
			h.fsm.Begin(c.Sender().ID, chatID(c), state.StepAwaitingPageNumber, cat.Key)
			h.fsm.Update(c.Sender().ID, chatID(c), func(s *state.Session) {
				s.Mode = state.ModeBrowse
			})
			return tghelpers.SendText(c, textAskBrowsePageNumber)
		}

		page, err := strconv.Atoi(payload)
		if err != nil || page < 1 {
			return c.Respond(&tele.CallbackResponse{Text: textBrowseBadPage})
		}
		return h.sendBrowsePage(c, cat, page)
	}
}
