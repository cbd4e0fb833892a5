// Package search sequences repository searches in response to user actions.
//
// The Controller owns the interaction state and at most one pending request.
// Every transition that changes the search parameters ends by triggering a
// new request, which first cancels the pending one. Outcomes are reconciled
// with Resolve; outcomes of superseded requests are discarded, so a late
// response can never overwrite newer state.
//
// Controller methods must be called from a single goroutine (the UI event
// loop). Only Request.Do may run elsewhere.
package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/h0rv/ghrs/internal/domain"
	"github.com/h0rv/ghrs/internal/gh"
	"github.com/h0rv/ghrs/internal/store"
)

// EmptyQueryMessage is shown when the user submits a blank query.
const EmptyQueryMessage = "Please enter a search query."

// Searcher runs one repository search. *gh.Client implements it.
type Searcher interface {
	SearchRepositories(ctx context.Context, params domain.SearchParams) (domain.SearchResult, error)
}

// Handle is the ownership token of one in-flight request.
type Handle struct {
	id     uint64
	cancel context.CancelFunc
}

// ID returns the sequence number of the request.
func (h *Handle) ID() uint64 { return h.id }

// Request is a search ready to run. Do performs the blocking call.
type Request struct {
	handle   *Handle
	ctx      context.Context
	params   domain.SearchParams
	searcher Searcher
}

// Params returns the parameters the request was issued with.
func (r *Request) Params() domain.SearchParams { return r.params }

// ID returns the sequence number of the request.
func (r *Request) ID() uint64 { return r.handle.id }

// Do runs the search. It is safe to call from any goroutine.
func (r *Request) Do() Outcome {
	result, err := r.searcher.SearchRepositories(r.ctx, r.params)
	if err == nil && r.ctx.Err() != nil {
		// Superseded after the response arrived.
		err = gh.ErrCancelled
	}
	return Outcome{handle: r.handle, Params: r.params, Result: result, Err: err}
}

// Outcome is the completion of a Request.
type Outcome struct {
	handle *Handle
	Params domain.SearchParams
	Result domain.SearchResult
	Err    error
}

// ID returns the sequence number of the request that produced the outcome.
func (o Outcome) ID() uint64 {
	if o.handle == nil {
		return 0
	}
	return o.handle.id
}

// Cancelled reports whether the outcome is a cancellation non-outcome.
func (o Outcome) Cancelled() bool {
	return gh.IsCancelled(o.Err) || errors.Is(o.Err, context.Canceled)
}

// Controller owns the interaction state and the pending request.
type Controller struct {
	searcher Searcher
	parent   context.Context
	logger   *slog.Logger
	store    *store.Store
	pending  *Handle
	nextID   uint64
}

// New creates a controller. Requests derive their context from ctx, so
// cancelling ctx aborts any pending request. A nil logger discards logs.
func New(ctx context.Context, searcher Searcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		searcher: searcher,
		parent:   ctx,
		logger:   logger,
		store:    store.New(),
	}
}

// State returns a snapshot of the interaction state.
func (c *Controller) State() store.State {
	return c.store.Snapshot()
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// SetDraft records the raw, uncommitted input.
func (c *Controller) SetDraft(text string) {
	c.store.SetDraft(text)
}

// Submit commits raw input as the query and searches from page 1.
// Blank input is rejected with a validation message and no request.
func (c *Controller) Submit(raw string) *Request {
	c.store.SetDraft(raw)
	query := strings.TrimSpace(raw)
	if query == "" {
		c.logger.Debug("rejected empty query")
		c.store.RejectInput(EmptyQueryMessage)
		return nil
	}
	c.store.Commit(query)
	return c.trigger()
}

// ChangePage moves to page p. Pages outside the reachable range of the last
// result, and the current page, are ignored.
func (c *Controller) ChangePage(p int) *Request {
	st := c.store.Snapshot()
	if p < 1 || p == st.Page {
		return nil
	}
	if (st.Phase == store.PhaseReady || st.Result.TotalCount > 0) && p > st.TotalPages() {
		return nil
	}
	c.store.SetPage(p)
	return c.triggerIfCommitted()
}

// NextPage moves one page forward.
func (c *Controller) NextPage() *Request {
	return c.ChangePage(c.store.Snapshot().Page + 1)
}

// PrevPage moves one page back.
func (c *Controller) PrevPage() *Request {
	return c.ChangePage(c.store.Snapshot().Page - 1)
}

// ChangeSort sets the sort key. The page is kept.
func (c *Controller) ChangeSort(key domain.SortKey) *Request {
	if key == c.store.Snapshot().Sort {
		return nil
	}
	c.store.SetSort(key)
	return c.triggerIfCommitted()
}

// ChangeOrder sets the sort direction. The page is kept.
func (c *Controller) ChangeOrder(order domain.Order) *Request {
	if order == c.store.Snapshot().Order {
		return nil
	}
	c.store.SetOrder(order)
	return c.triggerIfCommitted()
}

// Refresh re-runs the current search unchanged.
func (c *Controller) Refresh() *Request {
	return c.triggerIfCommitted()
}

// Cancel aborts the pending request without touching the state.
func (c *Controller) Cancel() {
	if c.pending != nil {
		c.pending.cancel()
		c.pending = nil
	}
}

// Resolve applies an outcome. It returns false when the outcome was
// discarded because it was cancelled or superseded.
func (c *Controller) Resolve(o Outcome) bool {
	if o.handle == nil || o.handle != c.pending {
		c.logger.Debug("discarded stale outcome", "request", o.ID())
		return false
	}
	c.pending = nil
	o.handle.cancel()

	if o.Cancelled() {
		c.logger.Debug("request cancelled", "request", o.ID())
		return false
	}

	if o.Err != nil {
		c.logger.Warn("search failed", "request", o.ID(), "query", o.Params.Query, "err", o.Err)
		c.store.ApplyFailure(o.Err.Error())
		return true
	}

	c.logger.Debug("search completed",
		"request", o.ID(),
		"total", o.Result.TotalCount,
		"items", len(o.Result.Items),
		"rate_remaining", o.Result.Rate.Remaining,
	)
	c.store.ApplyResult(o.Result)
	return true
}

func (c *Controller) triggerIfCommitted() *Request {
	if !c.store.Snapshot().HasQuery() {
		return nil
	}
	return c.trigger()
}

// trigger cancels the pending request and issues a new one for the current state.
func (c *Controller) trigger() *Request {
	if c.pending != nil {
		c.logger.Debug("superseding request", "request", c.pending.id)
		c.pending.cancel()
		c.pending = nil
	}

	ctx, cancel := context.WithCancel(c.parent)
	c.nextID++
	h := &Handle{id: c.nextID, cancel: cancel}
	c.pending = h
	c.store.BeginLoading()

	params := c.store.Snapshot().Params()
	c.logger.Debug("search started",
		"request", h.id,
		"query", params.Query,
		"page", params.Page,
		"sort", string(params.Sort),
		"order", string(params.Order),
	)

	return &Request{handle: h, ctx: ctx, params: params, searcher: c.searcher}
}
