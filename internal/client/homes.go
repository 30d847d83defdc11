package client

import (
	"context"
	"net/http"

	"github.com/CamKhongFine/iot/internal/home"
)

// ListHomes fetches all homes visible to the authenticated user,
// including the user's role in each.
func (c *Client) ListHomes(ctx context.Context) ([]home.Home, error) {
	var homes []home.Home
	if err := c.do(ctx, http.MethodGet, "/homes", nil, &homes); err != nil {
		return nil, err
	}
	return homes, nil
}
