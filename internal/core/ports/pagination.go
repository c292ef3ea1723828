package ports

// Pagination defaults shared by every list operation.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is the pagination envelope returned by all list operations.
type Page struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NormalizePage clamps page and limit to sane bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// NewPage builds the envelope; Pages is ceil(total/limit).
func NewPage(page, limit int, total int64) Page {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return Page{Page: page, Limit: limit, Total: total, Pages: pages}
}
