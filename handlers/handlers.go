// Package handlers wires the public browse surface and the admin content
// management dialogs to the catalog store.
package handlers

import (
	"errors"
	"strings"
	"unicode"

	tele "gopkg.in/telebot.v4"

	"studybot/catalog"
	tg "studybot/core/telegram"
	"studybot/core/telegram/commands"
	tghelpers "studybot/core/telegram/helpers"
	"studybot/core/telegram/state"
	"studybot/guard"
	"studybot/pagination"
)

// Callback keys outside the pagination token space.
const (
	cbTermsAll      = "terms_all"
	cbTermsByLetter = "terms_by_letter"
)

const (
	// DefaultAdminPageSize is how many entries a delete list shows per page.
	DefaultAdminPageSize = 10
	// DefaultBrowsePageSize is how many entries a public list shows per page.
	DefaultBrowsePageSize = 5
)

// Handlers owns every bot-facing handler and its dependencies.
type Handlers struct {
	store catalog.Store
	fsm   *state.Manager
	guard *guard.Guard

	adminPageSize  int
	browsePageSize int
}

// New builds the handler set. Non-positive page sizes fall back to the
// defaults.
func New(store catalog.Store, fsm *state.Manager, g *guard.Guard, adminPageSize, browsePageSize int) *Handlers {
	if adminPageSize < 1 {
		adminPageSize = DefaultAdminPageSize
	}
	if browsePageSize < 1 {
		browsePageSize = DefaultBrowsePageSize
	}
	return &Handlers{
		store:          store,
		fsm:            fsm,
		guard:          g,
		adminPageSize:  adminPageSize,
		browsePageSize: browsePageSize,
	}
}

// Register wires commands, callbacks, and the text fallback into the registry.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{Handler: h.Start, Description: "Главное меню"})
	reg.RegisterCommand("/help", commands.Command{Handler: h.Help, Description: "ℹ️ Справка"})
	reg.RegisterCommand("/support", commands.Command{Handler: h.Support, Description: "📩 Связь с администратором"})
	reg.RegisterCommand("/about", commands.Command{Handler: h.About, Description: "🤖 О боте"})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     h.AdminPanel,
		Description: "Админ-панель",
		AdminOnly:   true,
		Hidden:      true,
	})

	for _, cat := range catalog.All() {
		cat := cat
		if err := reg.RegisterCallback(pagination.DeleteVerb(cat), h.deleteItemHandler(cat)); err != nil {
			return err
		}
		if err := reg.RegisterCallback(pagination.NavKey(cat.Key), h.navDeleteHandler(cat)); err != nil {
			return err
		}
		if cat.Key == catalog.KeyGroup {
			// Groups are shown as plain blocks, not a paginated list.
			continue
		}
		if err := reg.RegisterCallback(pagination.BrowseKey(cat), h.browseNavHandler(cat)); err != nil {
			return err
		}
	}

	if err := reg.RegisterCallback(pagination.JumpKey, h.gotoDeletePrompt); err != nil {
		return err
	}
	if err := reg.RegisterCallback(pagination.IgnoreKey, h.ignorePageInfo); err != nil {
		return err
	}
	if err := reg.RegisterCallback(cbTermsAll, h.termsAll); err != nil {
		return err
	}
	if err := reg.RegisterCallback(cbTermsByLetter, h.termsByLetter); err != nil {
		return err
	}

	reg.SetTextFallback(h.TextFallback)
	return nil
}

// AdminAllow adapts the guard for the admin command middleware.
func (h *Handlers) AdminAllow(userID int64) error {
	return h.guard.Check(userID)
}

// AdminReject replies to a rejected admin command with the reason.
func (h *Handlers) AdminReject(c tele.Context, err error) error {
	return tghelpers.SendText(c, guardMessage(err))
}

func guardMessage(err error) string {
	switch {
	case errors.Is(err, guard.ErrConfiguration):
		return textConfigError
	case errors.Is(err, guard.ErrDenied):
		return textAccessDenied
	default:
		return textAccessFailed
	}
}

// checkAdminCallback answers the callback with an alert and reports false
// when the sender is not allow-listed.
func (h *Handlers) checkAdminCallback(c tele.Context) bool {
	if err := h.guard.Check(c.Sender().ID); err != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: guardMessage(err), ShowAlert: true})
		return false
	}
	return true
}

func (h *Handlers) checkAdminMessage(c tele.Context) bool {
	if err := h.guard.Check(c.Sender().ID); err != nil {
		_ = tghelpers.SendText(c, guardMessage(err))
		return false
	}
	return true
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

// TextFallback routes reply-keyboard button presses. Unknown text is
// ignored, matching how the original menus behave.
func (h *Handlers) TextFallback(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	for _, cat := range catalog.All() {
		ui := categoryTexts[cat.Key]
		switch text {
		case ui.browseLabel:
			switch cat.Key {
			case catalog.KeyTerm:
				return h.termsMenu(c)
			case catalog.KeyGroup:
				return h.groupBlocks(c)
			default:
				return h.sendBrowsePage(c, cat, 1)
			}
		case ui.manageLabel:
			if !h.checkAdminMessage(c) {
				return nil
			}
			return tghelpers.SendText(c, ui.manageTitle, &tele.SendOptions{ReplyMarkup: manageMenu(cat)})
		case ui.addLabel:
			if !h.checkAdminMessage(c) {
				return nil
			}
			return h.startWizard(c, cat)
		case ui.deleteLabel:
			if !h.checkAdminMessage(c) {
				return nil
			}
			return h.sendDeleteList(c, cat)
		}
	}

	switch text {
	case labelBackToAdmin:
		if !h.checkAdminMessage(c) {
			return nil
		}
		return tghelpers.SendText(c, textAdminReturn, &tele.SendOptions{ReplyMarkup: adminMenu()})
	case labelBackToMain:
		return tghelpers.SendText(c, textMainMenu, &tele.SendOptions{ReplyMarkup: mainMenu()})
	}

	// A single letter is a dictionary lookup; anything else is ignored.
	if runes := []rune(text); len(runes) == 1 && unicode.IsLetter(runes[0]) {
		return h.termsForLetter(c, runes[0])
	}
	return nil
}
