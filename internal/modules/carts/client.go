package carts

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

func (c *Client) FetchCart(ctx context.Context, id string) (Cart, error) {
	var cart Cart
	if err := c.api.Get(ctx, "/v1/carts/"+id, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// MarkPaid records the payment payload against the cart. The payload shape
// is owned by the backend; it is passed through untouched.
func (c *Client) MarkPaid(ctx context.Context, id string, payload map[string]any) (Cart, error) {
	var cart Cart
	if err := c.api.Post(ctx, "/v1/carts/"+id+"/paid", payload, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}
