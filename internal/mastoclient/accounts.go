package mastoclient

import (
	"context"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// VerifyCredentials resolves the account the token belongs to. The engine
// needs it to filter the user out of reply mention sets.
func (c *Client) VerifyCredentials(ctx context.Context) (*domain.Account, error) {
	var account domain.Account
	if err := c.getJSON(ctx, "/api/v1/accounts/verify_credentials", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
