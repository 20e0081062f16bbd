package resource

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultPageSize is used when a request does not name a usable size.
const DefaultPageSize = 25

// Pagination response headers.
const (
	HeaderPage      = "X-Page"
	HeaderPageSize  = "X-Page-Size"
	HeaderPageCount = "X-Page-Count"
	HeaderTotal     = "X-Total"
)

// PageRequest is the requested window of a collection.
type PageRequest struct {
	Page int
	Size int
}

// ParsePageRequest reads page and size from query values. A missing or
// unparseable page becomes 1; a missing, unparseable or non-positive
// size becomes defaultSize.
func ParsePageRequest(values url.Values, defaultSize int) PageRequest {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	req := PageRequest{Page: 1, Size: defaultSize}
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			req.Page = page
		} else {
			req.Page = 0
		}
	}
	if raw := values.Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			req.Size = size
		}
	}
	return req
}

// Offset returns the number of rows skipped. Pages at or below zero start
// at row zero; offsets beyond math.MaxInt are clamped to it.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Size * (p.Page - 1)
}

// PageResult describes the window actually served.
type PageResult struct {
	Page      int
	Size      int
	Total     int
	PageCount int
}

// NewPageResult computes the page count for total rows.
func NewPageResult(req PageRequest, total int) PageResult {
	return PageResult{
		Page:      req.Page,
		Size:      req.Size,
		Total:     total,
		PageCount: PageCount(total, req.Size),
	}
}

// PageCount returns ceil(total/size), zero for an empty collection.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// WriteHeaders sets the four pagination headers.
func (p PageResult) WriteHeaders(h http.Header) {
	h.Set(HeaderPage, strconv.Itoa(p.Page))
	h.Set(HeaderPageSize, strconv.Itoa(p.Size))
	h.Set(HeaderPageCount, strconv.Itoa(p.PageCount))
	h.Set(HeaderTotal, strconv.Itoa(p.Total))
}
