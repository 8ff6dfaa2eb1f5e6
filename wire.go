package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"coopmarket.io/checkout/cart"
	"coopmarket.io/checkout/config"
	"coopmarket.io/checkout/driver"
	"coopmarket.io/checkout/gateway"
	"coopmarket.io/checkout/payment"
	"coopmarket.io/checkout/shipping"
)

// NewFromConfig wires a full checkout service from environment configuration:
// gateway clients over the marketplace API, Redis-backed cart storage for the
// buyer session, the debounced shipping estimator, the payment strategy set
// and the NATS event bus. An empty RedisAddr falls back to in-memory cart
// storage, an empty NATSURL disables eventing.
func NewFromConfig(ctx context.Context, cfg *config.Config, sessionID string, logger *zap.Logger) (Service, error) {
	api := gateway.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	products := gateway.NewProductClient(api)
	rates := gateway.NewRateClient(api, logger)
	orders := gateway.NewOrderClient(api)
	payments := gateway.NewPaymentClient(api, logger)

	var storage cart.Storage
	if cfg.RedisAddr == "" {
		storage = cart.NewMemoryStorage()
	} else {
		client, err := driver.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		storage = cart.NewRedisStorage(client, sessionID)
	}

	store, err := cart.NewStore(ctx, storage, logger)
	if err != nil {
		return nil, err
	}

	natsConn, err := driver.ConnectNATS(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect nats: %w", err)
	}

	estimator := shipping.NewEstimator(products, rates, cfg.ShippingDebounce, logger)
	sub := NewSubmitter(orders, payment.NewRegistry(payments), logger)

	return NewService(store, estimator, sub, natsConn, logger), nil
}
