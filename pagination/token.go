package pagination

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"log/slog"

	"studybot/catalog"
	"studybot/core/logger"
)

const (
	// MaxCallbackData is Telegram's limit on callback_data, in bytes.
	MaxCallbackData = 64

	// JumpKey marks the jump-to-page button; its payload carries the category.
	JumpKey = "goto_delete_page"
	// IgnoreKey marks the non-actionable page indicator button.
	IgnoreKey = "ignore_page_info"
	// BrowseJumpPayload marks the public jump button within a browse key.
	BrowseJumpPayload = "goto"

	navPrefix  = "navigate_delete_"
	pageMarker = ":page:"
)

// DeleteVerb returns the callback key for delete buttons of a category:
// del_<cat>_by_id, or del_<cat>_by_name when the category has no serial id.
func DeleteVerb(cat catalog.Category) string {
	if cat.HasSurrogateID {
		return "del_" + cat.Key + "_by_id"
	}
	return "del_" + cat.Key + "_by_name"
}

// NavKey returns the callback key for delete-list navigation buttons.
func NavKey(catKey string) string {
	return navPrefix + catKey
}

// CategoryFromNavKey strips the navigation prefix off a callback key.
func CategoryFromNavKey(key string) (string, bool) {
	if !strings.HasPrefix(key, navPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, navPrefix), true
}

// BrowseKey returns the callback key for public list navigation. The plural
// table name doubles as the key: courses, resources, terms.
func BrowseKey(cat catalog.Category) string {
	return cat.Table
}

// ItemPayload encodes the payload of a delete button as
// <identifier>:page:<page>, so the handler can re-render the page the
// button was pressed on.
func ItemPayload(identifier string, page int) string {
	return identifier + pageMarker + strconv.Itoa(page)
}

// ParseItemPayload decodes <identifier>:page:<page>. A payload without the
// page suffix is accepted with page 1, which keeps older buttons working
// after a redeploy. Identifiers may themselves contain colons, so the page
// suffix is matched from the right.
func ParseItemPayload(payload string) (string, int, error) {
	idx := strings.LastIndex(payload, pageMarker)
	if idx < 0 {
		if payload == "" {
			return "", 0, fmt.Errorf("empty delete payload")
		}
		return payload, 1, nil
	}

	identifier := payload[:idx]
	pageRaw := payload[idx+len(pageMarker):]
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		return "", 0, fmt.Errorf("bad page in delete payload %q", payload)
	}
	if identifier == "" {
		return "", 0, fmt.Errorf("empty identifier in delete payload %q", payload)
	}
	return identifier, page, nil
}

// WireSize returns the encoded size of a callback token in bytes.
// telebot encodes buttons as \f<unique>|<payload>.
func WireSize(unique, payload string) int {
	return 1 + len(unique) + 1 + len(payload)
}

// Oversized reports whether the wire form of a callback token exceeds
// Telegram's 64-byte callback_data limit.
func Oversized(unique, payload string) bool {
	return WireSize(unique, payload) > MaxCallbackData
}

// CheckSize warns about an oversized token. The token is still emitted;
// the log points at the entry whose button Telegram may reject.
func CheckSize(ctx context.Context, unique, payload string) {
	if Oversized(unique, payload) {
		logger.Warn(ctx, "tg", "callback.oversized",
			slog.String("cb_key", unique),
			slog.String("payload", logger.SanitizeLimit(payload, 128)),
			slog.Int("count", WireSize(unique, payload)),
		)
	}
}
