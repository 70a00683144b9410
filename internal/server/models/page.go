package models

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 12
)

// PageRequest holds 1-based pagination parameters.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize replaces missing or invalid values with the defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset is the number of rows to skip. A product that does not fit in an
// int64 saturates at math.MaxInt64, which lies past the end of any result.
func (p PageRequest) Offset() int64 {
	n := p.Normalize()
	pages, size := int64(n.Page-1), int64(n.PageSize)
	if pages > math.MaxInt64/size {
		return math.MaxInt64
	}
	return pages * size
}

// Limit is the number of rows to return.
func (p PageRequest) Limit() int {
	return p.Normalize().PageSize
}

// TotalPages is ceil(total / pageSize), zero for an empty set.
func (p PageRequest) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total-1)/int64(p.Limit()) + 1
}

// WorkOrderPage is one page of a scoped work-order listing.
type WorkOrderPage struct {
	Items       []WorkOrder
	TotalCount  int64
	TotalPages  int64
	CurrentPage int
	PageSize    int
}
