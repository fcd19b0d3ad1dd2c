package mastoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/domain"
)

// CreateStatus publishes a new status.
func (c *Client) CreateStatus(ctx context.Context, payload api.CreateStatusPayload) (*domain.Status, error) {
	return c.postStatus(ctx, http.MethodPost, "/api/v1/statuses", payload)
}

// UpdateStatus edits an existing status. Visibility and reply target are
// not part of the payload; the server forbids changing them.
func (c *Client) UpdateStatus(ctx context.Context, id string, payload api.UpdateStatusPayload) (*domain.Status, error) {
	return c.postStatus(ctx, http.MethodPut, "/api/v1/statuses/"+id, payload)
}

func (c *Client) postStatus(ctx context.Context, method, path string, payload any) (*domain.Status, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode status payload: %w", err)
	}

	resp, err := c.do(ctx, method, path, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var status domain.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return &status, nil
}

// FetchStatusSource retrieves the original, pre-render text of a published
// status for editing.
func (c *Client) FetchStatusSource(ctx context.Context, id string) (*domain.StatusSource, error) {
	var source domain.StatusSource
	if err := c.getJSON(ctx, "/api/v1/statuses/"+id+"/source", nil, &source); err != nil {
		return nil, err
	}
	return &source, nil
}
