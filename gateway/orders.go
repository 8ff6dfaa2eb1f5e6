package gateway

import (
	"context"
	"fmt"
	"net/http"

	"coopmarket.io/checkout/models"
)

// OrderCreator persists a composed order at the remote order service and
// returns the server-assigned order id.
type OrderCreator interface {
	CreateOrder(ctx context.Context, payload models.OrderPayload) (string, error)
}

type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

type orderResponse struct {
	ID string `json:"id"`
}

func (r *orderResponse) validateSchema() error {
	if r.ID == "" {
		return fmt.Errorf("%w: order id missing", ErrBadSchema)
	}
	return nil
}

func (c *OrderClient) CreateOrder(ctx context.Context, payload models.OrderPayload) (string, error) {
	var resp orderResponse
	if err := c.client.do(ctx, http.MethodPost, "/orders", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}
