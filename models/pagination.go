package models

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage bounds ?page= so the skip offset stays far from overflow.
	MaxPage = 1 << 20
)

// PageRequest is a 1-based page selector.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to sane bounds using fallback as the default limit.
func (p PageRequest) Normalize(fallback int) PageRequest {
	if fallback <= 0 {
		fallback = DefaultPageLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = fallback
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Skip is the number of records before the requested page. It saturates
// at math.MaxInt instead of overflowing.
func (p PageRequest) Skip() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Pagination describes a page of results in list responses.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination builds the response block for a page of total records.
func NewPagination(p PageRequest, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
