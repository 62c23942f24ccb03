package handlers

import (
	"errors"
	"strconv"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"studybot/catalog"
	"studybot/core/logger"
	"studybot/core/telegram/callbacks"
	tghelpers "studybot/core/telegram/helpers"
	"studybot/core/telegram/keyboard"
	"studybot/core/telegram/state"
	"studybot/pagination"
)

// AdminPanel opens the admin menu. Access is enforced by the command
// middleware before this handler runs.
func (h *Handlers) AdminPanel(c tele.Context) error {
	return tghelpers.SendText(c, textAdminWelcome, &tele.SendOptions{ReplyMarkup: adminMenu()})
}

// startWizard opens the add dialog for a category.
func (h *Handlers) startWizard(c tele.Context, cat catalog.Category) error {
	h.fsm.Begin(c.Sender().ID, chatID(c), state.StepAwaitingName, cat.Key)
	return tghelpers.SendText(c, textAskName, &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()})
}

// sendDeleteList sends the first page of a category's delete list.
func (h *Handlers) sendDeleteList(c tele.Context, cat catalog.Category) error {
	ctx := tghelpers.WithHandler(c, "delete_list."+cat.Key)

	count, err := h.store.Count(ctx, cat)
	if err != nil {
		return tghelpers.SendText(c, textLoadError, &tele.SendOptions{ReplyMarkup: manageMenu(cat)})
	}
	if count == 0 {
		return tghelpers.SendText(c, cat.EmptyText, &tele.SendOptions{ReplyMarkup: manageMenu(cat)})
	}

	page := pagination.Compute(count, h.adminPageSize, 1)
	items, err := h.store.ListPage(ctx, cat, page.Offset, h.adminPageSize)
	if err != nil {
		return tghelpers.SendText(c, textLoadError, &tele.SendOptions{ReplyMarkup: manageMenu(cat)})
	}

	markup := pagination.DeleteKeyboard(ctx, cat, items, page, pagination.DefaultRowWidth)
	return tghelpers.SendText(c, cat.DeletePrompt, &tele.SendOptions{ReplyMarkup: markup})
}

// deleteItemHandler removes one entry and re-renders the list in place.
func (h *Handlers) deleteItemHandler(cat catalog.Category) tele.HandlerFunc {
	ui := categoryTexts[cat.Key]
	return func(c tele.Context) error {
		if !h.checkAdminCallback(c) {
			return nil
		}

		identifier, page, err := pagination.ParseItemPayload(callbacks.CallbackPayload(c))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: textBadDeleteToken, ShowAlert: true})
		}

		ctx := tghelpers.WithHandler(c, "delete."+cat.Key)

		var delErr error
		if cat.HasSurrogateID {
			id, parseErr := strconv.ParseInt(identifier, 10, 64)
			if parseErr != nil {
				return c.Respond(&tele.CallbackResponse{Text: textBadDeleteToken, ShowAlert: true})
			}
			delErr = h.store.DeleteByID(ctx, cat, id)
		} else {
			delErr = h.store.DeleteByName(ctx, cat, identifier)
		}

		switch {
		case delErr == nil:
			logger.Info(ctx, "service.catalog", "item.deleted",
				slog.String("category", cat.Key),
				slog.String("payload", logger.SanitizeLimit(identifier, 64)),
				slog.Int("page", page),
			)
			_ = c.Respond(&tele.CallbackResponse{Text: ui.deletedAlert(identifier), ShowAlert: true})
			return h.rerenderDeleteList(c, cat, page)
		case errors.Is(delErr, catalog.ErrNotFound):
			// Another admin got there first; nothing to re-render.
			return c.Respond(&tele.CallbackResponse{Text: ui.deleteMissedAlert(identifier), ShowAlert: true})
		default:
			return c.Respond(&tele.CallbackResponse{Text: ui.deleteErrorAlert, ShowAlert: true})
		}
	}
}

// rerenderDeleteList recomputes the list from store state and edits the
// message in place. The requested page clamps to the last page when the
// deletion emptied it, and an emptied category swaps the list for the
// category management menu.
func (h *Handlers) rerenderDeleteList(c tele.Context, cat catalog.Category, requested int) error {
	ctx := tghelpers.WithHandler(c, "delete_list."+cat.Key)
	ui := categoryTexts[cat.Key]

	count, err := h.store.Count(ctx, cat)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}
	if count == 0 {
		if err := c.Edit(cat.EmptyText); err != nil {
			logger.Warn(ctx, "tg", "edit.failed",
				slog.String("category", cat.Key),
				slog.String("err", err.Error()),
			)
		}
		return tghelpers.SendText(c, ui.manageTitle, &tele.SendOptions{ReplyMarkup: manageMenu(cat)})
	}

	page := pagination.Compute(count, h.adminPageSize, requested)
	items, err := h.store.ListPage(ctx, cat, page.Offset, h.adminPageSize)
	if err != nil {
		return tghelpers.SendText(c, textLoadError)
	}

	markup := pagination.DeleteKeyboard(ctx, cat, items, page, pagination.DefaultRowWidth)
	return c.Edit(cat.DeletePrompt, markup)
}

// navDeleteHandler serves prev/next buttons of delete lists.
func (h *Handlers) navDeleteHandler(cat catalog.Category) tele.HandlerFunc {
	return func(c tele.Context) error {
		if !h.checkAdminCallback(c) {
			return nil
		}
		page, err := callbacks.PayloadInt(c)
		if err != nil || page < 1 {
			return c.Respond(&tele.CallbackResponse{Text: textBadPageToken, ShowAlert: true})
		}
		return h.rerenderDeleteList(c, cat, page)
	}
}

// gotoDeletePrompt switches the list message into a page-number prompt and
// opens a dialog remembering which message to edit back.
func (h *Handlers) gotoDeletePrompt(c tele.Context) error {
	if !h.checkAdminCallback(c) {
		return nil
	}

	catKey := callbacks.CallbackPayload(c)
	if _, ok := catalog.Lookup(catKey); !ok {
		return c.Respond(&tele.CallbackResponse{Text: textBadJumpToken, ShowAlert: true})
	}

	msg := c.Message()
	if msg == nil {
		return c.Respond(&tele.CallbackResponse{Text: textBadJumpToken, ShowAlert: true})
	}

	h.fsm.Begin(c.Sender().ID, chatID(c), state.StepAwaitingPageNumber, catKey)
	h.fsm.Update(c.Sender().ID, chatID(c), func(s *state.Session) {
		s.Mode = state.ModeDelete
		s.PromptChatID = msg.Chat.ID
		s.PromptMessageID = msg.ID
	})
	return c.Edit(textAskPageNumber)
}

func (h *Handlers) ignorePageInfo(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: textCurrentPage})
}
