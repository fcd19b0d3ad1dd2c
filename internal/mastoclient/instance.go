package mastoclient

import (
	"context"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// instanceResponse is the slice of /api/v2/instance the composer needs.
type instanceResponse struct {
	Configuration struct {
		Statuses struct {
			MaxCharacters            int `json:"max_characters"`
			MaxMediaAttachments      int `json:"max_media_attachments"`
			CharactersReservedPerURL int `json:"characters_reserved_per_url"`
		} `json:"statuses"`
		MediaAttachments struct {
			SupportedMimeTypes []string `json:"supported_mime_types"`
		} `json:"media_attachments"`
		Polls struct {
			MaxOptions             int   `json:"max_options"`
			MaxCharactersPerOption int   `json:"max_characters_per_option"`
			MinExpiration          int64 `json:"min_expiration"`
			MaxExpiration          int64 `json:"max_expiration"`
		} `json:"polls"`
	} `json:"configuration"`
}

// FetchInstanceConfig reads the instance limits. Called once per session;
// the engine treats the result as read-only.
func (c *Client) FetchInstanceConfig(ctx context.Context) (*domain.InstanceConfig, error) {
	var resp instanceResponse
	if err := c.getJSON(ctx, "/api/v2/instance", nil, &resp); err != nil {
		return nil, err
	}

	cfg := resp.Configuration
	return &domain.InstanceConfig{
		MaxCharacters:              cfg.Statuses.MaxCharacters,
		MaxMediaAttachments:        cfg.Statuses.MaxMediaAttachments,
		CharactersReservedPerURL:   cfg.Statuses.CharactersReservedPerURL,
		SupportedMimeTypes:         cfg.MediaAttachments.SupportedMimeTypes,
		MaxPollOptions:             cfg.Polls.MaxOptions,
		MaxCharactersPerPollOption: cfg.Polls.MaxCharactersPerOption,
		MinPollExpiration:          cfg.Polls.MinExpiration,
		MaxPollExpiration:          cfg.Polls.MaxExpiration,
	}, nil
}
