package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/petalworks/storefront/internal/cart"
	"github.com/petalworks/storefront/internal/order"
	"github.com/petalworks/storefront/internal/order/store"
	"github.com/petalworks/storefront/pkg/messaging"
	"github.com/petalworks/storefront/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// CheckoutService defines the checkout operations consumed by the transport
// layer. It abstracts order creation and retrieval.
type CheckoutService interface {
	// PlaceOrder freezes the cart plus the customer fields into an order
	// record, persists it remotely, and clears the cart on success.
	// The cart is left untouched on any failure.
	PlaceOrder(ctx context.Context, crt *cart.Cart, customer order.Customer, payment order.PaymentMethod, proofURL string) (*order.Order, error)

	// Order retrieves a persisted order, falling back to the local cache
	// when the document store is unreachable.
	// Returns order.ErrNotFound if no order exists with the given ID.
	Order(ctx context.Context, id string) (*order.Order, error)
}

// Service implements CheckoutService.
type Service struct {
	orderStore    store.OrderStore
	cache         *store.Cache
	publisher     messaging.Publisher
	validate      *validator.Validate
	logger        *slog.Logger
	ordersCounter metric.Int64Counter

	mu       sync.Mutex
	inflight map[*cart.Cart]struct{}
}

// NewService creates a checkout service over the given collaborators.
func NewService(orderStore store.OrderStore, cache *store.Cache, publisher messaging.Publisher, logger *slog.Logger) *Service {
	meter := otel.Meter("storefront")
	ordersCounter, err := meter.Int64Counter("orders_placed", metric.WithDescription("Total number of placed orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_placed counter: %v", err))
	}
	return &Service{
		orderStore:    orderStore,
		cache:         cache,
		publisher:     publisher,
		validate:      validator.New(),
		logger:        logger.With("component", "checkout"),
		ordersCounter: ordersCounter,
		inflight:      make(map[*cart.Cart]struct{}),
	}
}

// PlaceOrder runs the checkout sequence: validate, snapshot, persist
// remotely, cache locally, publish, clear the cart. The remote write is the
// only confirmation of success; the cart is cleared after it and never
// before. A failed write leaves the cart intact so the shopper can retry.
func (s *Service) PlaceOrder(ctx context.Context, crt *cart.Cart, customer order.Customer, payment order.PaymentMethod, proofURL string) (*order.Order, error) {
	if !s.begin(crt) {
		return nil, ErrCheckoutInFlight
	}
	defer s.end(crt)

	snapshot := crt.Snapshot()
	if snapshot.Empty() {
		return nil, ErrEmptyCart
	}

	if err := s.validate.Struct(customer); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string)
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, err
	}

	o := buildOrder(snapshot, customer, payment, proofURL)

	if err := s.orderStore.Put(ctx, o); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist order", "order_id", o.ID, "error", err)
		return nil, &PersistenceError{Err: err}
	}
	s.cache.Put(o)

	event := events.OrderPlacedEvent{
		OrderID:       o.ID,
		StoreID:       o.StoreID,
		Total:         o.Total,
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		CreatedAt:     o.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish OrderPlacedEvent", "order_id", o.ID, "error", err)
	}
	s.ordersCounter.Add(ctx, 1)

	crt.Clear()
	s.logger.InfoContext(ctx, "Order placed", "order_id", o.ID, "store_id", o.StoreID, "total", o.Total)
	return o, nil
}

// Order retrieves a persisted order. The document store is authoritative;
// the local cache serves reads only when the store is unreachable.
func (s *Service) Order(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orderStore.FindByID(ctx, id)
	if err == nil {
		return o, nil
	}
	if errors.Is(err, order.ErrNotFound) {
		return nil, err
	}

	if cached, ok := s.cache.Get(id); ok {
		s.logger.WarnContext(ctx, "Serving order from local cache, store unreachable", "order_id", id, "error", err)
		return cached, nil
	}
	return nil, &PersistenceError{Err: err}
}

// begin marks the cart as having a checkout in flight. Returns false if one
// already is.
func (s *Service) begin(crt *cart.Cart) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[crt]; busy {
		return false
	}
	s.inflight[crt] = struct{}{}
	return true
}

func (s *Service) end(crt *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, crt)
}

// buildOrder freezes the snapshot into an immutable order record. The items
// are copied line by line so the record cannot alias live cart state.
func buildOrder(snapshot cart.Snapshot, customer order.Customer, payment order.PaymentMethod, proofURL string) *order.Order {
	items := make([]order.Item, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}
	return &order.Order{
		ID:        newOrderID(),
		StoreID:   snapshot.Lines[0].StoreID,
		Items:     items,
		Total:     snapshot.Total,
		Customer:  customer,
		Payment:   payment,
		ProofURL:  proofURL,
		Status:    order.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
