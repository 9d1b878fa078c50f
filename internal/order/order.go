// Package order defines the immutable order record produced at checkout.
package order

import (
	"errors"
	"time"

	"github.com/petalworks/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no order exists for a given ID.
var ErrNotFound = errors.New("order not found")

// Status is the lifecycle state of an order. This service only ever stamps
// StatusPending; later transitions are applied by the fulfilment system.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// PaymentMethod is the shopper's payment selection at checkout.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentEFT            PaymentMethod = "eft"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Address holds the delivery address components.
type Address struct {
	Street     string `json:"street" validate:"required,min=3"`
	Suburb     string `json:"suburb"`
	City       string `json:"city" validate:"required,min=2"`
	PostalCode string `json:"postal_code"`
}

// Customer holds the contact fields collected on the checkout form.
type Customer struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,min=7"`
	Address Address `json:"address" validate:"required"`
}

// Item is one frozen cart line inside an order. Prices are the unit prices
// the shopper saw, not current catalog prices.
type Item struct {
	ProductID int64            `json:"product_id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int32            `json:"quantity"`
	Image     catalog.ImageRef `json:"image"`
}

// Order is the durable record of a confirmed checkout. It is created once
// and never mutated by this service.
type Order struct {
	ID             string          `json:"id"`
	StoreID        int64           `json:"store_id"`
	Items          []Item          `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Customer       Customer        `json:"customer"`
	Payment        PaymentMethod   `json:"payment"`
	ProofURL       string          `json:"proof_url,omitempty"`
	Status         Status          `json:"status"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
