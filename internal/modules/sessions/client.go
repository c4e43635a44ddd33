package sessions

import (
	"context"

	"funnelpay.com/app/internal/transport"
)

type Client struct {
	api *transport.Client
}

func NewClient(api *transport.Client) *Client {
	return &Client{api: api}
}

func (c *Client) FetchSession(ctx context.Context, id string) (Session, error) {
	var s Session
	if err := c.api.Get(ctx, "/v1/sessions/"+id, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// MarkPurchased flags the session as purchased. Callers must only invoke it
// after the cart has been reconciled as paid.
func (c *Client) MarkPurchased(ctx context.Context, id string) error {
	return c.api.Post(ctx, "/v1/sessions/"+id+"/purchased", nil, nil)
}
