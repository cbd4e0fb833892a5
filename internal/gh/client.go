// Package gh provides the GitHub client used for repository search.
// Search goes through the REST API; the authenticated viewer is looked up over GraphQL.
package gh

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/machinebox/graphql"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com/"

// Options configures a Client.
type Options struct {
	BaseURL    string       // REST base URL, defaults to DefaultBaseURL
	Token      string       // Optional bearer token, empty for anonymous access
	HTTPClient *http.Client // Base HTTP client, defaults to a client on http.DefaultTransport
	UserAgent  string       // Defaults to "ghrs"
}

// Client is a GitHub API client for repository search.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	gql       *graphql.Client
	token     string
	userAgent string
}

// New creates a new GitHub client.
// When a token is given every request carries it as a bearer credential.
func New(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", raw, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.Token != "" {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
				Base:   base,
			},
			Timeout: httpClient.Timeout,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "ghrs"
	}

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		gql:       graphql.NewClient(graphQLEndpoint(baseURL), graphql.WithHTTPClient(httpClient)),
		token:     opts.Token,
		userAgent: userAgent,
	}, nil
}

// Authenticated reports whether requests carry a bearer token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// graphQLEndpoint maps a REST base URL to its GraphQL endpoint.
// api.github.com serves /graphql; GitHub Enterprise serves /api/graphql next to /api/v3.
func graphQLEndpoint(base *url.URL) string {
	u := *base
	if strings.HasSuffix(u.Path, "/api/v3/") {
		u.Path = strings.TrimSuffix(u.Path, "v3/") + "graphql"
	} else {
		u.Path += "graphql"
	}
	return u.String()
}

// makeRequest executes a GraphQL request. Authorization is added by the transport.
func (c *Client) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	if !c.Authenticated() {
		return ErrAnonymous
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.gql.Run(ctx, req, resp)
}
