// Package catalog defines the content categories the bot serves and the
// store contract behind them.
package catalog

// Category keys.
const (
	KeyCourse   = "course"
	KeyResource = "resource"
	KeyTerm     = "term"
	KeyGroup    = "group"
)

// Category describes one content category: where it is stored and how it
// behaves in dialogs. Terms are keyed by their name and carry no link;
// every other category has a serial id and requires a link.
type Category struct {
	Key   string
	Table string

	// Russian labels used in user-facing texts.
	DeletePrompt string
	EmptyText    string

	HasSurrogateID bool
	RequiresLink   bool
}

var categories = []Category{
	{
		Key:            KeyCourse,
		Table:          "courses",
		DeletePrompt:   "🗑️ Выберите курс для удаления:",
		EmptyText:      "ℹ️ Курсы отсутствуют.",
		HasSurrogateID: true,
		RequiresLink:   true,
	},
	{
		Key:            KeyResource,
		Table:          "resources",
		DeletePrompt:   "🗑️ Выберите ресурс для удаления:",
		EmptyText:      "ℹ️ Ресурсы отсутствуют.",
		HasSurrogateID: true,
		RequiresLink:   true,
	},
	{
		Key:            KeyTerm,
		Table:          "terms",
		DeletePrompt:   "🗑️ Выберите термин для удаления:",
		EmptyText:      "ℹ️ Термины отсутствуют.",
		HasSurrogateID: false,
		RequiresLink:   false,
	},
	{
		Key:            KeyGroup,
		Table:          "groups",
		DeletePrompt:   "🗑️ Выберите группу для удаления:",
		EmptyText:      "ℹ️ Группы отсутствуют.",
		HasSurrogateID: true,
		RequiresLink:   true,
	},
}

// All returns every category in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Lookup resolves a category by key.
func Lookup(key string) (Category, bool) {
	for _, cat := range categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}
