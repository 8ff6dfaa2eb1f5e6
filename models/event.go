package models

import (
	"encoding/json"
	"time"

	"coopmarket.io/checkout/models/enum"
)

// Event 代表一個結帳生命週期事件
type Event struct {
	ID         string          `json:"id"`
	Type       enum.EventType  `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
