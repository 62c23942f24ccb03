// Package guard implements the static admin allow-list.
package guard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Check outcomes.
var (
	// ErrDenied reports a user outside the allow-list.
	ErrDenied = errors.New("guard: access denied")
	// ErrConfiguration reports a broken allow-list. The guard fails closed:
	// every check denies until the configuration is fixed.
	ErrConfiguration = errors.New("guard: admin list misconfigured")
)

// Guard answers whether a Telegram user may use the admin surface.
// The allow-list is parsed once at startup; a malformed list is kept as a
// configuration error rather than silently granting or narrowing access.
type Guard struct {
	admins  map[int64]struct{}
	confErr error
}

// Parse builds a Guard from a comma-separated id list, e.g. "123,456".
// An empty or unparsable list produces a fail-closed guard; the
// configuration error is surfaced on every Check so operators see it on
// first use instead of at a crash.
func Parse(raw string) *Guard {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &Guard{confErr: fmt.Errorf("%w: empty list", ErrConfiguration)}
	}

	admins := make(map[int64]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return &Guard{confErr: fmt.Errorf("%w: bad id %q", ErrConfiguration, part)}
		}
		admins[id] = struct{}{}
	}
	if len(admins) == 0 {
		return &Guard{confErr: fmt.Errorf("%w: empty list", ErrConfiguration)}
	}
	return &Guard{admins: admins}
}

// Check returns nil for allow-listed users, ErrConfiguration when the
// guard failed closed, and ErrDenied otherwise.
func (g *Guard) Check(userID int64) error {
	if g == nil {
		return ErrConfiguration
	}
	if g.confErr != nil {
		return g.confErr
	}
	if _, ok := g.admins[userID]; ok {
		return nil
	}
	return ErrDenied
}

// Misconfigured reports whether the guard is in the fail-closed state.
func (g *Guard) Misconfigured() bool {
	return g == nil || g.confErr != nil
}
