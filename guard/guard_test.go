package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllowsListedIDs(t *testing.T) {
	g := Parse("123, 456,789")
	require.False(t, g.Misconfigured())

	assert.NoError(t, g.Check(123))
	assert.NoError(t, g.Check(456))
	assert.NoError(t, g.Check(789))
	assert.ErrorIs(t, g.Check(999), ErrDenied)
}

func TestParseFailsClosedOnGarbage(t *testing.T) {
	for _, raw := range []string{"", "  ", "abc", "123,abc", "123;456"} {
		g := Parse(raw)
		assert.True(t, g.Misconfigured(), "input %q", raw)
		assert.ErrorIs(t, g.Check(123), ErrConfiguration, "input %q", raw)
	}
}

func TestConfigurationErrorIsNotDenial(t *testing.T) {
	g := Parse("nope")
	err := g.Check(1)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrDenied)
}
