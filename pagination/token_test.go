package pagination

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybot/catalog"
)

func mustCategory(t *testing.T, key string) catalog.Category {
	t.Helper()
	cat, ok := catalog.Lookup(key)
	require.True(t, ok)
	return cat
}

func TestDeleteVerbPerCategory(t *testing.T) {
	assert.Equal(t, "del_course_by_id", DeleteVerb(mustCategory(t, catalog.KeyCourse)))
	assert.Equal(t, "del_resource_by_id", DeleteVerb(mustCategory(t, catalog.KeyResource)))
	assert.Equal(t, "del_group_by_id", DeleteVerb(mustCategory(t, catalog.KeyGroup)))
	assert.Equal(t, "del_term_by_name", DeleteVerb(mustCategory(t, catalog.KeyTerm)))
}

func TestNavKeyRoundTrip(t *testing.T) {
	key := NavKey("course")
	assert.Equal(t, "navigate_delete_course", key)

	cat, ok := CategoryFromNavKey(key)
	require.True(t, ok)
	assert.Equal(t, "course", cat)

	_, ok = CategoryFromNavKey("courses")
	assert.False(t, ok)
}

func TestItemPayloadRoundTrip(t *testing.T) {
	payload := ItemPayload("42", 3)
	assert.Equal(t, "42:page:3", payload)

	id, page, err := ParseItemPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, 3, page)
}

func TestParseItemPayloadTermWithColon(t *testing.T) {
	payload := ItemPayload("Go: основы", 2)
	name, page, err := ParseItemPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "Go: основы", name)
	assert.Equal(t, 2, page)
}

func TestParseItemPayloadWithoutPageDefaultsToFirst(t *testing.T) {
	id, page, err := ParseItemPayload("17")
	require.NoError(t, err)
	assert.Equal(t, "17", id)
	assert.Equal(t, 1, page)
}

func TestParseItemPayloadRejectsGarbage(t *testing.T) {
	for _, payload := range []string{"", "17:page:abc", "17:page:0", ":page:2"} {
		_, _, err := ParseItemPayload(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}

// Terms are deleted by name, so a long enough term pushes the token past
// Telegram's 64-byte callback_data limit. The token is still emitted; the
// renderer only warns.
func TestOversizedTokenDetection(t *testing.T) {
	verb := DeleteVerb(mustCategory(t, catalog.KeyTerm)) // 16 bytes

	// \f + verb + | leaves 46 bytes for the payload.
	fits := ItemPayload(strings.Repeat("x", 39), 1) // 39 + 6 + 1 = 46
	assert.Equal(t, MaxCallbackData, WireSize(verb, fits))
	assert.False(t, Oversized(verb, fits))

	over := ItemPayload(strings.Repeat("x", 40), 1)
	assert.True(t, Oversized(verb, over))
	CheckSize(context.Background(), verb, over)
}

func TestBrowseKeyIsPluralTable(t *testing.T) {
	assert.Equal(t, "courses", BrowseKey(mustCategory(t, catalog.KeyCourse)))
	assert.Equal(t, "terms", BrowseKey(mustCategory(t, catalog.KeyTerm)))
}
