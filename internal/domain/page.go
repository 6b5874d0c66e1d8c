package domain

import (
	"math"
	"strconv"
)

// MaxPageLimit is the hard upper bound for any list endpoint.
const MaxPageLimit = 50

// MaxSkip bounds the number of documents a page may skip, keeping
// (page-1)*limit well inside int and the database's skip range.
const MaxSkip = math.MaxInt32

// PageRequest is a skip/limit pagination window.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest parses raw page/limit query values. Missing, malformed or
// non-positive values fall back to page 1 and defaultLimit; limit is clamped to MaxPageLimit
// and page so that the skip stays within MaxSkip.
func NewPageRequest(rawPage, rawLimit string, defaultLimit int) PageRequest {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if limit > 0 && page-1 > MaxSkip/limit {
		page = MaxSkip/limit + 1
	}
	return PageRequest{Page: page, Limit: limit}
}

// Skip returns the number of documents before the window, saturating at MaxSkip.
func (p PageRequest) Skip() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > MaxSkip/p.Limit {
		return MaxSkip
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total / limit).
func (p PageRequest) TotalPages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}
