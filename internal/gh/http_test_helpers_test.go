package gh

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestHTTPClient(fn roundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

// failingBody errors on the first Read.
type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (failingBody) Close() error             { return nil }

func textHTTPResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const sampleSearchJSON = `{
  "total_count": 237,
  "incomplete_results": true,
  "items": [
    {
      "id": 10270250,
      "full_name": "facebook/react",
      "html_url": "https://github.com/facebook/react",
      "description": "The library for web and native user interfaces.",
      "stargazers_count": 230000,
      "forks_count": 47000,
      "open_issues_count": 900,
      "language": "JavaScript",
      "updated_at": "2024-05-01T12:00:00Z",
      "owner": {
        "login": "facebook",
        "avatar_url": "https://avatars.githubusercontent.com/u/69631?v=4",
        "html_url": "https://github.com/facebook"
      }
    },
    {
      "id": 2,
      "full_name": "someone/empty",
      "html_url": "https://github.com/someone/empty",
      "description": null,
      "stargazers_count": 0,
      "forks_count": 0,
      "open_issues_count": 0,
      "language": null,
      "updated_at": "2023-01-02T03:04:05Z",
      "owner": {
        "login": "someone",
        "avatar_url": "https://avatars.githubusercontent.com/u/2?v=4",
        "html_url": "https://github.com/someone"
      }
    }
  ]
}`

func newTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	client, err := New(Options{BaseURL: baseURL, Token: token})
	require.NoError(t, err)
	return client
}
