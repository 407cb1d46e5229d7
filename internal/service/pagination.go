package service

// Page bounds shared by every paginated listing.
const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// pageWindow clamps page and perPage and returns them with the row offset.
func pageWindow(page, perPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, (page - 1) * perPage
}
