package catalog

import (
	"context"
	"errors"
	"strconv"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Sentinel outcomes callers branch on with errors.Is.
var (
	// ErrAlreadyExists reports a name collision on insert.
	ErrAlreadyExists = errors.New("catalog: entry already exists")
	// ErrNotFound reports that the targeted entry no longer exists.
	ErrNotFound = errors.New("catalog: entry not found")
)

// Entity is one catalog entry. For the term category Name holds the term
// itself and Description its definition; ID and Link stay zero.
type Entity struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Link        string `db:"link"`
}

// Identifier returns the value delete tokens carry for this entity:
// the serial id, or the name for categories without one.
func (e Entity) Identifier(cat Category) string {
	if cat.HasSurrogateID {
		return formatID(e.ID)
	}
	return e.Name
}

// Store is the persistence contract for catalog entries.
type Store interface {
	Add(ctx context.Context, cat Category, e Entity) error
	DeleteByID(ctx context.Context, cat Category, id int64) error
	DeleteByName(ctx context.Context, cat Category, name string) error
	UpdateByID(ctx context.Context, cat Category, e Entity) error
	UpdateByName(ctx context.Context, cat Category, name string, e Entity) error
	ListPage(ctx context.Context, cat Category, offset, limit int) ([]Entity, error)
	ListAll(ctx context.Context, cat Category) ([]Entity, error)
	Count(ctx context.Context, cat Category) (int, error)
}
