package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"coopmarket.io/checkout/models"
)

// ProductGetter resolves a full product record from the remote catalog.
type ProductGetter interface {
	GetProductByID(ctx context.Context, productID string) (*models.Product, error)
}

type ProductClient struct {
	client *Client
}

func NewProductClient(client *Client) *ProductClient {
	return &ProductClient{client: client}
}

type productResponse struct {
	ID            string  `json:"id"`
	CooperativeID string  `json:"cooperative_id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	Unit          string  `json:"unit"`
	Available     uint64  `json:"available"`
}

func (r *productResponse) validateSchema() error {
	if r.ID == "" {
		return fmt.Errorf("%w: product id missing", ErrBadSchema)
	}
	if r.CooperativeID == "" {
		return fmt.Errorf("%w: product %s has no cooperative id", ErrBadSchema, r.ID)
	}
	return nil
}

func (c *ProductClient) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {
	var resp productResponse
	path := "/products/" + url.PathEscape(productID)
	if err := c.client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &models.Product{
		ID:            resp.ID,
		CooperativeID: resp.CooperativeID,
		Name:          resp.Name,
		UnitPrice:     resp.UnitPrice,
		Unit:          resp.Unit,
		Available:     resp.Available,
	}, nil
}
