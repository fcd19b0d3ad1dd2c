package mastoclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// Search queries the instance for accounts or hashtags matching the query.
func (c *Client) Search(ctx context.Context, entityType, query string, limit int) (*domain.SearchResults, error) {
	q := url.Values{}
	q.Set("type", entityType)
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var results domain.SearchResults
	if err := c.getJSON(ctx, "/api/v2/search", q, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
