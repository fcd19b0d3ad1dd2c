package mastoclient

import (
	"context"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// ListCustomEmojis fetches the instance emoji directory.
func (c *Client) ListCustomEmojis(ctx context.Context) ([]domain.CustomEmoji, error) {
	var emojis []domain.CustomEmoji
	if err := c.getJSON(ctx, "/api/v1/custom_emojis", nil, &emojis); err != nil {
		return nil, err
	}
	return emojis, nil
}
