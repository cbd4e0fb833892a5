// Package domain defines the normalized domain types for GitHub repository search.
// These types represent the core concepts independent of the GitHub REST API structure.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider-imposed limits.
const (
	PageSize    = 10   // Results per page, fixed
	ResultsCap  = 1000 // GitHub paginates at most this many matches per query
	MaxPageSize = 100  // Largest per_page the search API accepts
)

var (
	// ErrEmptyQuery indicates the query text is empty or whitespace-only.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("page must be a positive integer")
	// ErrInvalidPageSize indicates a page size outside 1..MaxPageSize.
	ErrInvalidPageSize = errors.New("page size out of range")
)

// SortKey selects the ranking requested from the provider.
type SortKey string

// SortKey constants. SortBestMatch is the provider's default ranking.
const (
	SortBestMatch SortKey = "best-match"
	SortStars     SortKey = "stars"
	SortForks     SortKey = "forks"
	SortUpdated   SortKey = "updated"
)

// SortKeys returns all sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortBestMatch, SortStars, SortForks, SortUpdated}
}

// ParseSortKey converts user input into a SortKey.
// Accepts "relevance" and "last-updated" as aliases.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-match", "relevance":
		return SortBestMatch, nil
	case "stars":
		return SortStars, nil
	case "forks":
		return SortForks, nil
	case "updated", "last-updated":
		return SortUpdated, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want best-match, stars, forks or updated)", s)
}

// QueryValue returns the value of the sort query parameter.
// It is empty for SortBestMatch, meaning the parameter must be omitted.
func (k SortKey) QueryValue() string {
	if k == SortBestMatch {
		return ""
	}
	return string(k)
}

// Label returns the human-readable name of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortStars:
		return "Stars"
	case SortForks:
		return "Forks"
	case SortUpdated:
		return "Recently updated"
	default:
		return "Best match"
	}
}

// Order is the sort direction.
type Order string

// Order constants.
const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

// ParseOrder converts user input into an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return OrderDesc, nil
	case "asc", "ascending":
		return OrderAsc, nil
	}
	return "", fmt.Errorf("unknown order %q (want desc or asc)", s)
}

// Toggle returns the opposite direction.
func (o Order) Toggle() Order {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// Label returns the human-readable name of the direction.
func (o Order) Label() string {
	if o == OrderAsc {
		return "Asc"
	}
	return "Desc"
}

// SearchParams is one fully-specified repository search.
type SearchParams struct {
	Query   string  // Free text, may embed qualifiers (language:go, stars:>100)
	Page    int     // 1-based page number
	PerPage int     // Results per page
	Sort    SortKey // Ranking
	Order   Order   // Direction
}

// Validate checks the invariants required before a request is issued.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return ErrEmptyQuery
	}
	if p.Page < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, p.Page)
	}
	if p.PerPage < 1 || p.PerPage > MaxPageSize {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, p.PerPage)
	}
	return nil
}

// Owner is the account owning a repository.
type Owner struct {
	Login      string
	AvatarURL  string
	ProfileURL string
}

// Repository is a read-only projection of a search hit.
type Repository struct {
	ID          int64
	FullName    string // owner/name
	URL         string // HTML URL
	Description string // Empty when the repository has none
	Stars       int
	Forks       int
	OpenIssues  int
	Language    string // Empty when GitHub detected none
	UpdatedAt   time.Time
	Owner       Owner
}

// RateLimit is the provider's quota as reported on the last response.
// The zero value means the headers were absent.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Known reports whether the rate limit headers were present.
func (r RateLimit) Known() bool {
	return r.Limit > 0
}

// SearchResult is one page of search hits.
type SearchResult struct {
	TotalCount int  // Total matches reported by the provider (may exceed ResultsCap)
	Incomplete bool // Provider timed out and results may be partial
	Items      []Repository
	Rate       RateLimit
}

// Capped reports whether the provider will not paginate through all matches.
func (r SearchResult) Capped() bool {
	return r.TotalCount > ResultsCap
}
