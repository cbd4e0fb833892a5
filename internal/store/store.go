// Package store holds the interaction state of a search session: the draft
// and committed query, the sort settings, the current page, and the outcome
// of the last request. It is not safe for concurrent use; the search
// controller mutates it from a single goroutine.
package store

import (
	"github.com/h0rv/ghrs/internal/domain"
	"github.com/h0rv/ghrs/internal/pagination"
)

// Phase is the coarse state of the session.
type Phase int

const (
	PhaseIdle    Phase = iota // No committed query
	PhaseLoading              // Request in flight
	PhaseReady                // Result displayed
	PhaseErrored              // Failure displayed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseErrored:
		return "errored"
	default:
		return "idle"
	}
}

// State is a snapshot of the interaction state.
type State struct {
	Draft     string // Raw input as typed
	Committed string // Trimmed query last submitted, empty until first submit
	Sort      domain.SortKey
	Order     domain.Order
	Page      int
	Result    domain.SearchResult
	Loading   bool
	Err       string // User-facing failure message, empty when none
	Phase     Phase
}

// HasQuery reports whether a query has been committed.
func (s State) HasQuery() bool {
	return s.Committed != ""
}

// TotalPages returns the number of reachable pages for the current result.
func (s State) TotalPages() int {
	return pagination.TotalPages(s.Result.TotalCount, domain.PageSize, domain.ResultsCap)
}

// Params returns the search parameters for the current state.
func (s State) Params() domain.SearchParams {
	return domain.SearchParams{
		Query:   s.Committed,
		Page:    s.Page,
		PerPage: domain.PageSize,
		Sort:    s.Sort,
		Order:   s.Order,
	}
}

// Store manages the interaction state.
type Store struct {
	state State

	// Set by RejectInput until the next request starts; a validation
	// message outlives the response of the request it interrupted.
	rejected bool
}

// New creates a store with the provider's default ranking, descending, page 1.
func New() *Store {
	return &Store{state: State{
		Sort:  domain.SortBestMatch,
		Order: domain.OrderDesc,
		Page:  1,
		Phase: PhaseIdle,
	}}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	st := s.state
	st.Result.Items = append([]domain.Repository(nil), s.state.Result.Items...)
	return st
}

// SetDraft records the raw input.
func (s *Store) SetDraft(draft string) {
	s.state.Draft = draft
}

// Commit sets the committed query and resets to the first page.
func (s *Store) Commit(query string) {
	s.state.Committed = query
	s.state.Page = 1
}

// SetPage sets the current page.
func (s *Store) SetPage(page int) {
	s.state.Page = page
}

// SetSort sets the sort key.
func (s *Store) SetSort(key domain.SortKey) {
	s.state.Sort = key
}

// SetOrder sets the sort direction.
func (s *Store) SetOrder(order domain.Order) {
	s.state.Order = order
}

// BeginLoading marks a request as in flight and clears the last failure.
func (s *Store) BeginLoading() {
	s.state.Loading = true
	s.state.Err = ""
	s.state.Phase = PhaseLoading
	s.rejected = false
}

// ApplyResult replaces the result set with a successful response. A
// validation message recorded while the request was in flight is kept.
func (s *Store) ApplyResult(result domain.SearchResult) {
	s.state.Result = result
	s.state.Loading = false
	s.state.Phase = PhaseReady
	if !s.rejected {
		s.state.Err = ""
	}
}

// ApplyFailure clears the result set and records a failure message.
func (s *Store) ApplyFailure(message string) {
	s.state.Result = domain.SearchResult{}
	s.state.Loading = false
	s.state.Err = message
	s.state.Phase = PhaseErrored
	s.rejected = false
}

// RejectInput records a validation failure. A request already in flight
// keeps running, so the loading flag is left as is.
func (s *Store) RejectInput(message string) {
	s.state.Result = domain.SearchResult{}
	s.state.Err = message
	s.state.Phase = PhaseErrored
	s.rejected = true
}
