package gh

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/h0rv/ghrs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(sort domain.SortKey) domain.SearchParams {
	return domain.SearchParams{
		Query:   "react stars:>50000 language:typescript",
		Page:    2,
		PerPage: domain.PageSize,
		Sort:    sort,
		Order:   domain.OrderDesc,
	}
}

func TestSearchRepositories_Success(t *testing.T) {
	var gotQuery url.Values
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		gotQuery = r.URL.Query()
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Limit", "30")
		w.Header().Set("X-RateLimit-Remaining", "29")
		w.Header().Set("X-RateLimit-Reset", "1714564800")
		_, _ = w.Write([]byte(sampleSearchJSON))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	result, err := client.SearchRepositories(context.Background(), testParams(domain.SortStars))
	require.NoError(t, err)

	// Query parameters
	assert.Equal(t, "react stars:>50000 language:typescript", gotQuery.Get("q"), "qualifiers pass through verbatim")
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "10", gotQuery.Get("per_page"))
	assert.Equal(t, "stars", gotQuery.Get("sort"))
	assert.Equal(t, "desc", gotQuery.Get("order"))

	// Headers
	assert.Equal(t, "application/vnd.github+json", gotHeader.Get("Accept"))
	assert.Empty(t, gotHeader.Get("Authorization"), "anonymous requests carry no credential")

	// Result shape
	assert.Equal(t, 237, result.TotalCount)
	assert.True(t, result.Incomplete)
	require.Len(t, result.Items, 2)

	react := result.Items[0]
	assert.Equal(t, int64(10270250), react.ID)
	assert.Equal(t, "facebook/react", react.FullName)
	assert.Equal(t, "https://github.com/facebook/react", react.URL)
	assert.Equal(t, 230000, react.Stars)
	assert.Equal(t, 47000, react.Forks)
	assert.Equal(t, 900, react.OpenIssues)
	assert.Equal(t, "JavaScript", react.Language)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), react.UpdatedAt.UTC())
	assert.Equal(t, "facebook", react.Owner.Login)
	assert.Equal(t, "https://github.com/facebook", react.Owner.ProfileURL)
	assert.NotEmpty(t, react.Owner.AvatarURL)

	empty := result.Items[1]
	assert.Empty(t, empty.Description, "null description maps to empty")
	assert.Empty(t, empty.Language, "null language maps to empty")

	assert.Equal(t, 30, result.Rate.Limit)
	assert.Equal(t, 29, result.Rate.Remaining)
	assert.Equal(t, int64(1714564800), result.Rate.Reset.Unix())
}

func TestSearchRepositories_RelevanceOmitsSort(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.SearchRepositories(context.Background(), testParams(domain.SortBestMatch))
	require.NoError(t, err)

	_, hasSort := gotQuery["sort"]
	assert.False(t, hasSort, "best-match must not send a sort parameter")
	assert.Equal(t, "desc", gotQuery.Get("order"), "order is always sent")
}

func TestSearchRepositories_BearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "ghp_secret")
	assert.True(t, client.Authenticated())

	_, err := client.SearchRepositories(context.Background(), testParams(domain.SortForks))
	require.NoError(t, err)
	assert.Equal(t, "Bearer ghp_secret", gotAuth)
}

func TestSearchRepositories_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.SearchRepositories(context.Background(), testParams(domain.SortStars))

	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.StatusCode)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Not Found")

	status, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, 404, status)
	assert.False(t, IsCancelled(err))
}

func TestSearchRepositories_EmptyBodyUsesStatusPhrase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.SearchRepositories(context.Background(), testParams(domain.SortStars))

	require.Error(t, err)
	assert.Equal(t, "GitHub API error (503): Service Unavailable", err.Error())
}

func TestSearchRepositories_BodyReadFailure(t *testing.T) {
	httpClient := newTestHTTPClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Header:     http.Header{},
			Body:       failingBody{},
		}, nil
	})
	client, err := New(Options{BaseURL: "https://api.example.test", HTTPClient: httpClient})
	require.NoError(t, err)

	_, err = client.SearchRepositories(context.Background(), testParams(domain.SortStars))

	require.Error(t, err)
	assert.Equal(t, "GitHub API error (500): Internal Server Error", err.Error())
}

func TestSearchRepositories_RateLimited(t *testing.T) {
	httpClient := newTestHTTPClient(func(req *http.Request) (*http.Response, error) {
		resp := textHTTPResponse(http.StatusForbidden, `{"message":"API rate limit exceeded for 127.0.0.1."}`)
		resp.Header.Set("X-RateLimit-Remaining", "0")
		return resp, nil
	})
	client, err := New(Options{BaseURL: "https://api.example.test/", HTTPClient: httpClient})
	require.NoError(t, err)

	_, err = client.SearchRepositories(context.Background(), testParams(domain.SortStars))

	assert.True(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestSearchRepositories_ParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.SearchRepositories(context.Background(), testParams(domain.SortStars))

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestSearchRepositories_TransportError(t *testing.T) {
	httpClient := newTestHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	client, err := New(Options{BaseURL: "https://api.example.test/", HTTPClient: httpClient})
	require.NoError(t, err)

	_, err = client.SearchRepositories(context.Background(), testParams(domain.SortStars))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, IsCancelled(err))
}

func TestSearchRepositories_Cancelled(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	client := newTestClient(t, srv.URL, "")
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := client.SearchRepositories(ctx, testParams(domain.SortStars))
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, IsCancelled(err), "got %v", err)
		assert.ErrorIs(t, err, context.Canceled)
		var ce *ClientError
		assert.False(t, errors.As(err, &ce), "cancellation is not a client error")
	case <-time.After(5 * time.Second):
		t.Fatal("search did not return after cancellation")
	}
}

func TestSearchRepositories_RejectsEmptyQuery(t *testing.T) {
	called := false
	httpClient := newTestHTTPClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return textHTTPResponse(http.StatusOK, "{}"), nil
	})
	client, err := New(Options{HTTPClient: httpClient})
	require.NoError(t, err)

	params := testParams(domain.SortStars)
	params.Query = "   "
	_, err = client.SearchRepositories(context.Background(), params)

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.False(t, called, "no request for an empty query")
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "api.github.com"})
	assert.Error(t, err)
}
