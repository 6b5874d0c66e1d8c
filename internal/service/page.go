package service

import "alcyxob/wellness-app/internal/domain"

// Default page sizes per listing.
const (
	DefaultProgressLimit   = 10
	DefaultCatalogLimit    = 10
	DefaultDailyPlanLimit  = 10
	DefaultSuggestionLimit = 50
	DefaultRoutineLimit    = 10
)

// Page is one window of a paginated listing.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	Request    domain.PageRequest
}

func newPage[T any](items []T, total int64, req domain.PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, TotalCount: total, Request: req}
}

// TotalPages returns the number of pages at the requested limit.
func (p *Page[T]) TotalPages() int64 {
	return p.Request.TotalPages(p.TotalCount)
}
