package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"coopmarket.io/checkout/models"
)

// PaymentInitiator asks the mobile-money gateway to push an approval prompt to
// the buyer's phone for a just-created order.
type PaymentInitiator interface {
	ProcessPayment(ctx context.Context, orderID, phone string) (*models.PaymentInitiation, error)
}

type PaymentClient struct {
	client  *Client
	breaker *gobreaker.CircuitBreaker[*models.PaymentInitiation]
}

func NewPaymentClient(client *Client, logger *zap.Logger) *PaymentClient {
	settings := gobreaker.Settings{
		Name:        "payment-initiation",
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &PaymentClient{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[*models.PaymentInitiation](settings),
	}
}

type paymentRequest struct {
	OrderID string `json:"order_id"`
	Phone   string `json:"phone"`
}

type paymentResponse struct {
	TransactionRef string `json:"transaction_ref"`
}

func (r *paymentResponse) validateSchema() error {
	if r.TransactionRef == "" {
		return fmt.Errorf("%w: transaction ref missing", ErrBadSchema)
	}
	return nil
}

func (c *PaymentClient) ProcessPayment(ctx context.Context, orderID, phone string) (*models.PaymentInitiation, error) {
	return c.breaker.Execute(func() (*models.PaymentInitiation, error) {
		var resp paymentResponse
		req := paymentRequest{OrderID: orderID, Phone: phone}
		if err := c.client.do(ctx, http.MethodPost, "/payments/process", req, &resp); err != nil {
			return nil, err
		}
		return &models.PaymentInitiation{TransactionRef: resp.TransactionRef}, nil
	})
}
