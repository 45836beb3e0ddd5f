package utils

// Page is one entry in a pagination strip. Number 0 renders as an
// ellipsis.
type Page struct {
	Number int
	IsLink bool
}

// Pagination is the view model for the list screens' pager.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []Page
}

// Paginate builds a windowed pager: first page, up to `window` pages on
// each side of the current one, last page, with ellipses in the gaps.
// Returns nil when a single page holds everything.
func Paginate(currentPage, totalPages int) *Pagination {
	if totalPages <= 1 {
		return nil
	}

	const window = 2

	var pages []Page
	pages = append(pages, Page{Number: 1, IsLink: true})

	if currentPage > window+2 {
		pages = append(pages, Page{}) // ellipsis
	}

	start := currentPage - window
	if start < 2 {
		start = 2
	}
	end := currentPage + window
	if end > totalPages-1 {
		end = totalPages - 1
	}
	for i := start; i <= end; i++ {
		pages = append(pages, Page{Number: i, IsLink: true})
	}

	if currentPage < totalPages-(window+1) {
		pages = append(pages, Page{}) // ellipsis
	}
	pages = append(pages, Page{Number: totalPages, IsLink: true})

	final := make([]Page, 0, len(pages))
	seen := make(map[int]bool)
	for _, p := range pages {
		if p.Number == currentPage {
			p.IsLink = false
		}
		if p.Number == 0 {
			final = append(final, p)
			continue
		}
		if !seen[p.Number] {
			final = append(final, p)
			seen[p.Number] = true
		}
	}

	return &Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		Pages:       final,
	}
}
