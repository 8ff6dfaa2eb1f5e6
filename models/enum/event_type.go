package enum

// EventType 表示結帳生命週期事件的類型
type EventType string

const (
	EventTypeCartUpdated      EventType = "cart.updated"
	EventTypeOrderCreated     EventType = "order.created"
	EventTypePaymentInitiated EventType = "payment.initiated"
	EventTypePaymentPending   EventType = "payment.pending"
	EventTypeCheckoutFailed   EventType = "checkout.failed"
)
