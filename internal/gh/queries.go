package gh

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
)

// Viewer returns the login of the authenticated user.
// Returns ErrAnonymous when the client has no token.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	req := graphql.NewRequest(`
		query {
			viewer {
				login
			}
		}
	`)

	var resp struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("failed to get viewer: %w", err)
	}

	return resp.Viewer.Login, nil
}
