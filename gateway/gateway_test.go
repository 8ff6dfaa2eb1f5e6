package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coopmarket.io/checkout/models"
	"coopmarket.io/checkout/models/enum"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, zap.NewNop())
}

func TestGetProductByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "p1",
			"cooperative_id": "coop-7",
			"name":           "Arabica beans",
			"unit_price":     5000,
			"unit":           "kg",
			"available":      12,
		})
	})

	product, err := NewProductClient(client).GetProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "coop-7", product.CooperativeID)
	assert.Equal(t, uint64(12), product.Available)
}

func TestGetProductByIDRejectsMissingCooperative(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "p1"}) // no cooperative_id
	})

	_, err := NewProductClient(client).GetProductByID(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrBadSchema)
}

func TestGetProductByIDRemoteError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := NewProductClient(client).GetProductByID(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrRemote)
}

func TestCalculateShipping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipping/calculate", r.URL.Path)

		var req models.RateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Nyagatare", req.District)
		assert.Equal(t, "coop-7", req.CooperativeID)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"options": []map[string]any{
				{"method": "STANDARD", "description": "Standard", "cost": 1000, "estimated_days": 2},
				{"method": "EXPRESS", "description": "Express", "cost": 3000, "estimated_days": 1},
			},
		})
	})

	options, err := NewRateClient(client, zap.NewNop()).CalculateShipping(context.Background(), models.RateRequest{
		CooperativeID: "coop-7",
		District:      "Nyagatare",
		Items:         []models.RateItem{{ProductID: "p1", Quantity: 3}},
		TotalAmount:   23000,
	})
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "STANDARD", options[0].Method)
	assert.Equal(t, float64(1000), options[0].Cost)
}

func TestCalculateShippingRejectsBadOption(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"options": []map[string]any{
				{"method": "STANDARD", "cost": -5, "estimated_days": 2},
			},
		})
	})

	_, err := NewRateClient(client, zap.NewNop()).CalculateShipping(context.Background(), models.RateRequest{})
	assert.ErrorIs(t, err, ErrBadSchema)
}

func TestCreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)

		var payload models.OrderPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, enum.PaymentMethodMTNMobileMoney, payload.PaymentMethod)
		assert.NotEmpty(t, payload.IdempotencyKey)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": "order123"})
	})

	orderID, err := NewOrderClient(client).CreateOrder(context.Background(), models.OrderPayload{
		PaymentMethod:  enum.PaymentMethodMTNMobileMoney,
		IdempotencyKey: "idem-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order123", orderID)
}

func TestCreateOrderRejectsMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := NewOrderClient(client).CreateOrder(context.Background(), models.OrderPayload{})
	assert.ErrorIs(t, err, ErrBadSchema)
}

func TestProcessPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/process", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order123", req["order_id"])
		assert.Equal(t, "0788123456", req["phone"])

		_ = json.NewEncoder(w).Encode(map[string]any{"transaction_ref": "TXN-998"})
	})

	initiation, err := NewPaymentClient(client, zap.NewNop()).ProcessPayment(context.Background(), "order123", "0788123456")
	require.NoError(t, err)
	assert.Equal(t, "TXN-998", initiation.TransactionRef)
}

func TestProcessPaymentRejectsMissingRef(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := NewPaymentClient(client, zap.NewNop()).ProcessPayment(context.Background(), "order123", "0788123456")
	assert.ErrorIs(t, err, ErrBadSchema)
}
