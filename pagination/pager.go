// Package pagination implements the cursor math, callback-token codec, and
// keyboard rendering behind every paginated list the bot shows.
package pagination

// Page is a resolved position within a paginated list.
type Page struct {
	Number     int
	TotalPages int
	Offset     int
	HasPrev    bool
	HasNext    bool
}

// Compute resolves a requested page number against the current total.
// Pages are 1-based. Out-of-range requests clamp to the nearest valid
// page, and TotalPages never drops below 1 so an empty list still
// resolves to page 1/1.
func Compute(total, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		Offset:     (number - 1) * pageSize,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}
