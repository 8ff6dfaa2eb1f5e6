package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"coopmarket.io/checkout/models"
)

// RateCalculator computes the shipping options for one (cooperative, district)
// pair and the current cart.
type RateCalculator interface {
	CalculateShipping(ctx context.Context, req models.RateRequest) ([]models.ShippingOption, error)
}

type RateClient struct {
	client  *Client
	breaker *gobreaker.CircuitBreaker[[]models.ShippingOption]
}

func NewRateClient(client *Client, logger *zap.Logger) *RateClient {
	settings := gobreaker.Settings{
		Name:        "shipping-rates",
		MaxRequests: 3,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &RateClient{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]models.ShippingOption](settings),
	}
}

type rateResponse struct {
	Options []rateOption `json:"options"`
}

type rateOption struct {
	Method        string  `json:"method"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days"`
}

func (r *rateResponse) validateSchema() error {
	for i := range r.Options {
		opt := &r.Options[i]
		if opt.Method == "" {
			return fmt.Errorf("%w: shipping option %d has no method id", ErrBadSchema, i)
		}
		if opt.Cost < 0 {
			return fmt.Errorf("%w: shipping option %s has negative cost", ErrBadSchema, opt.Method)
		}
		if opt.EstimatedDays <= 0 {
			return fmt.Errorf("%w: shipping option %s has non-positive estimated days", ErrBadSchema, opt.Method)
		}
	}
	return nil
}

func (c *RateClient) CalculateShipping(ctx context.Context, req models.RateRequest) ([]models.ShippingOption, error) {
	return c.breaker.Execute(func() ([]models.ShippingOption, error) {
		var resp rateResponse
		if err := c.client.do(ctx, http.MethodPost, "/shipping/calculate", req, &resp); err != nil {
			return nil, err
		}

		options := make([]models.ShippingOption, len(resp.Options))
		for i, opt := range resp.Options {
			options[i] = models.ShippingOption{
				Method:        opt.Method,
				Description:   opt.Description,
				Cost:          opt.Cost,
				EstimatedDays: opt.EstimatedDays,
			}
		}
		return options, nil
	})
}
