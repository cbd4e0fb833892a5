package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	goGithub "github.com/google/go-github/v72/github"
	"github.com/google/go-querystring/query"
	"github.com/h0rv/ghrs/internal/domain"
)

const (
	mediaTypeJSON = "application/vnd.github+json"
	apiVersion    = "2022-11-28"
)

// searchQuery is the query string of GET /search/repositories.
// Sort is omitted for best-match so the provider applies its default ranking.
type searchQuery struct {
	Q       string `url:"q"`
	Page    int    `url:"page"`
	PerPage int    `url:"per_page"`
	Sort    string `url:"sort,omitempty"`
	Order   string `url:"order"`
}

// searchURL builds the request URL for params.
func (c *Client) searchURL(params domain.SearchParams) (string, error) {
	values, err := query.Values(searchQuery{
		Q:       params.Query,
		Page:    params.Page,
		PerPage: params.PerPage,
		Sort:    params.Sort.QueryValue(),
		Order:   string(params.Order),
	})
	if err != nil {
		return "", fmt.Errorf("encode search query: %w", err)
	}
	u := c.baseURL.ResolveReference(&url.URL{Path: "search/repositories"})
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// SearchRepositories runs one repository search.
//
// Failures are one of *TransportError, *ClientError or *ParseError. When ctx
// is cancelled the error matches ErrCancelled instead, and the caller must
// treat it as no outcome at all.
func (c *Client) SearchRepositories(ctx context.Context, params domain.SearchParams) (domain.SearchResult, error) {
	if err := params.Validate(); err != nil {
		return domain.SearchResult{}, err
	}

	target, err := c.searchURL(params)
	if err != nil {
		return domain.SearchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", mediaTypeJSON)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.SearchResult{}, fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
		}
		return domain.SearchResult{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(resp.Body)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.SearchResult{}, fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
		}
		if readErr != nil {
			body = nil
		}
		status := http.StatusText(resp.StatusCode)
		if status == "" {
			status = resp.Status
		}
		return domain.SearchResult{}, &ClientError{
			StatusCode: resp.StatusCode,
			Status:     status,
			Body:       string(body),
			RateLimit:  resp.Header.Get("X-RateLimit-Remaining") == "0",
		}
	}

	var payload goGithub.RepositoriesSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.SearchResult{}, fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
		}
		return domain.SearchResult{}, &ParseError{Err: err}
	}

	result := toSearchResult(&payload)
	result.Rate = parseRateLimit(resp.Header)
	return result, nil
}

// toSearchResult projects the provider payload onto the domain types.
func toSearchResult(payload *goGithub.RepositoriesSearchResult) domain.SearchResult {
	items := make([]domain.Repository, 0, len(payload.Repositories))
	for _, r := range payload.Repositories {
		if r == nil {
			continue
		}
		owner := r.GetOwner()
		items = append(items, domain.Repository{
			ID:          r.GetID(),
			FullName:    r.GetFullName(),
			URL:         r.GetHTMLURL(),
			Description: r.GetDescription(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			OpenIssues:  r.GetOpenIssuesCount(),
			Language:    r.GetLanguage(),
			UpdatedAt:   r.GetUpdatedAt().Time,
			Owner: domain.Owner{
				Login:      owner.GetLogin(),
				AvatarURL:  owner.GetAvatarURL(),
				ProfileURL: owner.GetHTMLURL(),
			},
		})
	}

	return domain.SearchResult{
		TotalCount: payload.GetTotal(),
		Incomplete: payload.GetIncompleteResults(),
		Items:      items,
	}
}

// parseRateLimit reads the X-RateLimit-* headers. Missing or malformed
// headers yield the zero value.
func parseRateLimit(h http.Header) domain.RateLimit {
	limit, err := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	if err != nil {
		return domain.RateLimit{}
	}
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return domain.RateLimit{}
	}
	rate := domain.RateLimit{Limit: limit, Remaining: remaining}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		rate.Reset = time.Unix(reset, 0)
	}
	return rate
}
