// Package monday provides a GraphQL client for the Monday.com v2 API.
// It implements a deep module interface - simple methods hiding the GraphQL
// queries, cursor pagination, and column-value JSON plumbing.
package monday

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"

	"sprintpulse/internal/auth"
)

const apiEndpoint = "https://api.monday.com/v2"

// Client is a Monday.com GraphQL API client.
// It provides high-level methods for reading board data and writing
// highlights, items, and updates back.
type Client struct {
	gql   *graphql.Client
	token string
}

// New creates a new Monday.com client.
// It obtains an API token using the auth package.
// Returns an error if token retrieval fails.
func New() (*Client, error) {
	token, err := auth.GetToken()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain Monday API token: %w", err)
	}
	return NewWithToken(token), nil
}

// NewWithToken creates a client with an explicit token.
func NewWithToken(token string) *Client {
	return &Client{
		gql:   graphql.NewClient(apiEndpoint),
		token: token,
	}
}

// makeRequest executes a GraphQL request with authentication.
// Monday expects the raw token in the Authorization header, no Bearer prefix.
func (c *Client) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
	return c.gql.Run(ctx, req, resp)
}
