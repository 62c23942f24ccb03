package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePageMath(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		pageSize  int
		requested int
		want      Page
	}{
		{
			name: "single partial page", total: 7, pageSize: 10, requested: 1,
			want: Page{Number: 1, TotalPages: 1, Offset: 0},
		},
		{
			name: "exact fit", total: 20, pageSize: 10, requested: 2,
			want: Page{Number: 2, TotalPages: 2, Offset: 10, HasPrev: true},
		},
		{
			name: "middle page", total: 25, pageSize: 10, requested: 2,
			want: Page{Number: 2, TotalPages: 3, Offset: 10, HasPrev: true, HasNext: true},
		},
		{
			name: "clamp above", total: 25, pageSize: 10, requested: 9,
			want: Page{Number: 3, TotalPages: 3, Offset: 20, HasPrev: true},
		},
		{
			name: "clamp below", total: 25, pageSize: 10, requested: 0,
			want: Page{Number: 1, TotalPages: 3, HasNext: true},
		},
		{
			name: "empty list still has page one", total: 0, pageSize: 10, requested: 5,
			want: Page{Number: 1, TotalPages: 1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compute(tc.total, tc.pageSize, tc.requested))
		})
	}
}

func TestComputeTwelveItemsSizeTen(t *testing.T) {
	first := Compute(12, 10, 1)
	assert.Equal(t, 2, first.TotalPages)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	second := Compute(12, 10, 2)
	assert.Equal(t, 10, second.Offset, "page two starts after the first ten items")
	assert.True(t, second.HasPrev)
	assert.False(t, second.HasNext)
}

func TestComputeAfterDeleteFallsBackToLastPage(t *testing.T) {
	// Eleven items give two pages; deleting the eleventh while viewing
	// page two leaves ten items, and the same request clamps back to
	// the now-last page.
	before := Compute(11, 10, 2)
	assert.Equal(t, 2, before.Number)

	after := Compute(10, 10, 2)
	assert.Equal(t, 1, after.Number)
	assert.Equal(t, 1, after.TotalPages)
	assert.False(t, after.HasNext)
}
