package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced = "OrderPlaced"
	EventStockLow    = "StockLow"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "bookstore-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type PlacedItem struct {
	BookID          string `json:"book_id"`
	Qty             int    `json:"qty"`
	PriceAtPurchase int    `json:"price_at_purchase"`
}

type OrderPlacedPayload struct {
	OrderID     string       `json:"order_id"`
	UserID      string       `json:"user_id"`
	Items       []PlacedItem `json:"items"`
	TotalAmount int          `json:"total_amount"`
}

type StockLowPayload struct {
	BookID    string `json:"book_id"`
	Title     string `json:"title,omitempty"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
	OrderID   string `json:"order_id,omitempty"` // order yang memicu alert
}
