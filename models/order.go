package models

import (
	"coopmarket.io/checkout/models/enum"
)

// OrderPayload 代表提交給遠端訂單服務的訂單。Line-item prices are the ones
// captured in the cart at submission time, never re-fetched.
type OrderPayload struct {
	Items          []OrderItem        `json:"items"`
	ShippingInfo   ShippingInfo       `json:"shipping_info"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	TotalAmount    float64            `json:"total_amount"`
	ShippingMethod string             `json:"shipping_method"`
	ShippingCost   float64            `json:"shipping_cost"`
	IdempotencyKey string             `json:"idempotency_key"`
}

// OrderItem 訂單中的單個商品項目
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  uint64  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// PaymentInitiation is the successful result of a payment-initiation call. The
// buyer still has to approve a prompt on their phone; TransactionRef identifies
// the pending charge.
type PaymentInitiation struct {
	TransactionRef string `json:"transaction_ref"`
}

// OrderResult is the outcome of one successful submit attempt. Payment is nil
// when the method needs no initiation or when initiation failed; in the latter
// case PaymentPending is set and the order still stands.
type OrderResult struct {
	OrderID        string             `json:"order_id"`
	Payment        *PaymentInitiation `json:"payment,omitempty"`
	PaymentPending bool               `json:"payment_pending,omitempty"`
}
