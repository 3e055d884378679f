package pagination

const (
	// DefaultPage is used when no page is provided.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxPage caps how deep offset pagination can reach.
	MaxPage = 10000
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
)

// Params holds validated page/limit inputs from controllers.
type Params struct {
	Page  int
	Limit int
}

// Default returns the standard first-page parameters.
func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// Offset converts the page number into a row offset.
func (p Params) Offset() int {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	return (page - 1) * limit
}

// Meta carries the pagination metadata returned alongside a result page.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	PageLimit   int   `json:"pageLimit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// MetaFor computes page metadata for a total row count.
// totalPages == ceil(totalCount / limit), hasNextPage == page < totalPages.
func MetaFor(params Params, totalCount int64) Meta {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	return Meta{
		CurrentPage: page,
		PageLimit:   limit,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && totalCount > 0,
	}
}
