package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"studybot/catalog"
	tghelpers "studybot/core/telegram/helpers"
	"studybot/core/telegram/state"
	"studybot/pagination"
)

// StepHandlers returns the dispatch table for the dialog manager.
func (h *Handlers) StepHandlers() map[state.Step]tele.HandlerFunc {
	return map[state.Step]tele.HandlerFunc{
		state.StepAwaitingName:        h.wizardName,
		state.StepAwaitingDescription: h.wizardDescription,
		state.StepAwaitingLink:        h.wizardLink,
		state.StepAwaitingPageNumber:  h.pageNumberInput,
	}
}

// StateCorrupt answers a message whose session no longer maps to a known
// step. The session is already cleared when this runs.
func (h *Handlers) StateCorrupt(c tele.Context) error {
	return tghelpers.SendText(c, textStateError)
}

func (h *Handlers) wizardName(c tele.Context) error {
	name := strings.TrimSpace(c.Text())
	if name == "" {
		return tghelpers.SendText(c, textNameEmpty)
	}
	h.fsm.Update(c.Sender().ID, chatID(c), func(s *state.Session) {
		s.Name = name
	})
	h.fsm.Transition(c.Sender().ID, chatID(c), state.StepAwaitingDescription)
	return tghelpers.SendText(c, textAskDescription)
}

func (h *Handlers) wizardDescription(c tele.Context) error {
	userID, chID := c.Sender().ID, chatID(c)

	sess, ok := h.fsm.Get(userID, chID)
	if !ok {
		return tghelpers.SendText(c, textStateError)
	}
	cat, ok := catalog.Lookup(sess.Category)
	if !ok {
		h.fsm.Clear(userID, chID)
		return tghelpers.SendText(c, textStateError)
	}

	h.fsm.Update(userID, chID, func(s *state.Session) {
		s.Description = strings.TrimSpace(c.Text())
	})

	if cat.RequiresLink {
		h.fsm.Transition(userID, chID, state.StepAwaitingLink)
		return tghelpers.SendText(c, textAskLink)
	}
	return h.finalizeAdd(c, cat, "")
}

func (h *Handlers) wizardLink(c tele.Context) error {
	link := strings.TrimSpace(c.Text())
	if link == "" {
		return tghelpers.SendText(c, textLinkEmpty)
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return tghelpers.SendText(c, textLinkBadPrefix)
	}

	sess, ok := h.fsm.Get(c.Sender().ID, chatID(c))
	if !ok {
		return tghelpers.SendText(c, textStateError)
	}
	cat, ok := catalog.Lookup(sess.Category)
	if !ok {
		h.fsm.Clear(c.Sender().ID, chatID(c))
		return tghelpers.SendText(c, textStateError)
	}
	return h.finalizeAdd(c, cat, link)
}

// finalizeAdd persists the collected entry and closes the dialog. The
// dialog ends on both success and failure; a retry starts from scratch.
func (h *Handlers) finalizeAdd(c tele.Context, cat catalog.Category, link string) error {
	userID, chID := c.Sender().ID, chatID(c)
	ui := categoryTexts[cat.Key]

	sess, ok := h.fsm.Get(userID, chID)
	if !ok {
		return tghelpers.SendText(c, textStateError)
	}
	h.fsm.Clear(userID, chID)

	ctx := tghelpers.WithHandler(c, "add."+cat.Key)
	err := h.store.Add(ctx, cat, catalog.Entity{
		Name:        sess.Name,
		Description: sess.Description,
		Link:        link,
	})

	opts := &tele.SendOptions{ReplyMarkup: adminMenu()}
	switch {
	case err == nil:
		return tghelpers.SendText(c, ui.addedOK(sess.Name), opts)
	case errors.Is(err, catalog.ErrAlreadyExists):
		return tghelpers.SendText(c, ui.addedDup(sess.Name), opts)
	default:
		return tghelpers.SendText(c, ui.addError, opts)
	}
}

// pageNumberInput consumes the reply to a page-number prompt, for both the
// public browse jump and the admin delete-list jump.
func (h *Handlers) pageNumberInput(c tele.Context) error {
	userID, chID := c.Sender().ID, chatID(c)

	sess, ok := h.fsm.Get(userID, chID)
	if !ok {
		return tghelpers.SendText(c, textStateError)
	}
	cat, catOK := catalog.Lookup(sess.Category)
	if !catOK {
		h.fsm.Clear(userID, chID)
		return tghelpers.SendText(c, textStateError)
	}

	text := strings.TrimSpace(c.Text())

	if sess.Mode == state.ModeBrowse {
		page, err := strconv.Atoi(text)
		if err != nil || page < 1 {
			return tghelpers.SendText(c, textBrowseBadPage)
		}
		h.fsm.Clear(userID, chID)
		return h.sendBrowsePage(c, cat, page)
	}

	// Delete-list jump: without a stored prompt reference there is no
	// message to edit back, so the session is corrupted scratch.
	if sess.PromptChatID == 0 || sess.PromptMessageID == 0 {
		h.fsm.Clear(userID, chID)
		return tghelpers.SendText(c, textStateError)
	}

	// Reject malformed input before touching the store.
	page, err := strconv.Atoi(text)
	if err != nil {
		return tghelpers.SendText(c, textBadPageFormat)
	}
	if page < 1 {
		return tghelpers.SendText(c, textDeleteBadPage)
	}

	ctx := tghelpers.WithHandler(c, "delete_jump."+cat.Key)
	count, err := h.store.Count(ctx, cat)
	if err != nil {
		h.fsm.Clear(userID, chID)
		return tghelpers.SendText(c, textLoadError)
	}
	totalPages := pagination.Compute(count, h.adminPageSize, 1).TotalPages
	if page > totalPages {
		return tghelpers.SendText(c, fmt.Sprintf(textDeletePageRange, totalPages))
	}

	result := pagination.Compute(count, h.adminPageSize, page)
	items, err := h.store.ListPage(ctx, cat, result.Offset, h.adminPageSize)
	if err != nil {
		h.fsm.Clear(userID, chID)
		return tghelpers.SendText(c, textLoadError)
	}

	markup := pagination.DeleteKeyboard(ctx, cat, items, result, pagination.DefaultRowWidth)
	target := &tele.StoredMessage{
		MessageID: strconv.Itoa(sess.PromptMessageID),
		ChatID:    sess.PromptChatID,
	}
	h.fsm.Clear(userID, chID)
	if _, err := c.Bot().Edit(target, cat.DeletePrompt, markup); err != nil {
		return tghelpers.SendText(c, textPageUpdateError)
	}
	return nil
}
