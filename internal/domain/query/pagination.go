package query

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination carries the requested page and page size. Zero values take the
// defaults (page 1, limit 10); limits above the cap are clamped.
type Pagination struct {
	Page  int `json:"page" query:"page"`
	Limit int `json:"limit" query:"limit"`
}

// Normalize returns a copy with defaults applied and the limit clamped.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p
}

// Offset computes the number of rows to skip for the requested page.
func (p Pagination) Offset() int {
	n := p.Normalize()

	return (n.Page - 1) * n.Limit
}

// PageInfo is the metadata attached to every paginated response. Total comes
// from an independent count query using the same predicate as the page fetch;
// the pair is best-effort consistent under concurrent writes, not snapshot
// isolated.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPageInfo derives page metadata from the normalized request and the total
// row count. TotalPages is ceil(total/limit).
func NewPageInfo(p Pagination, total int64) PageInfo {
	n := p.Normalize()
	totalPages := int((total + int64(n.Limit) - 1) / int64(n.Limit))

	return PageInfo{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page bundles one page of results with its metadata.
type Page[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"pagination"`
}
