package models

// ShippingInfo 代表收貨資料。Everything except DeliveryNotes is required before
// submission; the validate tags are checked by the coordinator at submit time.
type ShippingInfo struct {
	FullName      string `json:"full_name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	District      string `json:"district" validate:"required"`
	Sector        string `json:"sector" validate:"required"`
	DeliveryNotes string `json:"delivery_notes,omitempty"`
}

// ShippingOption is one computed (method, cost, duration) tuple for delivering
// to a district. The rate boundary produces a set per (cooperative, district).
type ShippingOption struct {
	Method        string  `json:"method"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days"`
}

// ShippingQuote is the estimator's current view: the available options plus the
// selected method and its adopted cost. A zero quote (no options, zero cost)
// is the degraded state and still allows checkout.
type ShippingQuote struct {
	Options []ShippingOption `json:"options"`
	Method  string           `json:"method"`
	Cost    float64          `json:"cost"`
}

// RateRequest is the payload sent to the shipping-rate boundary.
type RateRequest struct {
	CooperativeID string     `json:"cooperative_id"`
	District      string     `json:"district"`
	Items         []RateItem `json:"items"`
	TotalAmount   float64    `json:"total_amount"`
}

type RateItem struct {
	ProductID string `json:"product_id"`
	Quantity  uint64 `json:"quantity"`
}
