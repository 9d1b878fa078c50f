package events

import (
	"encoding/json"
	"time"

	"github.com/petalworks/storefront/pkg/messaging"
	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is published after an order has been written to the
// document store. The confirmation worker consumes it to notify the shopper.
type OrderPlacedEvent struct {
	OrderID       string          `json:"order_id"`
	StoreID       int64           `json:"store_id"`
	Total         decimal.Decimal `json:"total"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (o OrderPlacedEvent) Subject() string {
	return messaging.OrdersPlacedSubject
}

func (o OrderPlacedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
