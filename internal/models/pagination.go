package models

import (
	"math"
)

// PagedResult is one window of a filtered, sorted result set together with the
// size of the whole set.
type PagedResult[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
}

// NewPagedResult wraps an already-windowed item slice. TotalPages is always
// derived from TotalCount and PageSize, never stored independently.
func NewPagedResult[T any](items []T, totalCount int64, pageNumber, pageSize int) *PagedResult[T] {
	return &PagedResult[T]{
		Items:       items,
		CurrentPage: pageNumber,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(pageSize))),
	}
}

// PaginationHeader is the out-of-band page metadata emitted in the Pagination
// response header. The body carries only the item array.
type PaginationHeader struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
}

func (p *PagedResult[T]) Header() PaginationHeader {
	return PaginationHeader{
		CurrentPage:  p.CurrentPage,
		ItemsPerPage: p.PageSize,
		TotalItems:   p.TotalCount,
		TotalPages:   p.TotalPages,
	}
}
