package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/petalworks/storefront/internal/cart"
	"github.com/petalworks/storefront/internal/catalog"
	"github.com/petalworks/storefront/internal/order"
	"github.com/petalworks/storefront/internal/order/store"
	"github.com/petalworks/storefront/pkg/messaging"
	"github.com/petalworks/storefront/pkg/messaging/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrderStore is a mock implementation of the OrderStore interface
type mockOrderStore struct {
	mu      sync.Mutex
	putErr  error
	saved   []*order.Order
	found   *order.Order
	findErr error

	enterPut   chan struct{} // signaled when Put is entered
	releasePut chan struct{} // Put blocks until closed, when set
}

func (m *mockOrderStore) Put(_ context.Context, o *order.Order) error {
	if m.enterPut != nil {
		m.enterPut <- struct{}{}
	}
	if m.releasePut != nil {
		<-m.releasePut
	}
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, o)
	return nil
}

func (m *mockOrderStore) FindByID(_ context.Context, _ string) (*order.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.found, nil
}

func (m *mockOrderStore) savedOrders() []*order.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

// mockPublisher is a mock implementation of the messaging.Publisher interface
type mockPublisher struct {
	mu     sync.Mutex
	err    error
	events []messaging.Event
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) published() []messaging.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func validCustomer() order.Customer {
	return order.Customer{
		Name:  "Thandi Mokoena",
		Email: "thandi@example.com",
		Phone: "+27215550123",
		Address: order.Address{
			Street:     "12 Kloof Street",
			Suburb:     "Gardens",
			City:       "Cape Town",
			PostalCode: "8001",
		},
	}
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	rose := catalog.Product{ID: 1, Name: "Red Rose Bouquet", Price: decimal.RequireFromString("49.99"), InStock: true}
	c := cart.New()
	require.NoError(t, c.AddItem(rose, 1, 3))
	return c
}

func Test_Service_PlaceOrder_Success(t *testing.T) {
	// given
	orderStore := &mockOrderStore{}
	publisher := &mockPublisher{}
	cache := store.NewCache()
	svc := NewService(orderStore, cache, publisher, testLogger())
	crt := filledCart(t)

	// when
	placed, err := svc.PlaceOrder(context.Background(), crt, validCustomer(), order.PaymentEFT, "https://files.example.com/proof.jpg")

	// then
	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.Regexp(t, `^ORD-\d+-\d{4}$`, placed.ID)
	assert.Equal(t, int64(1), placed.StoreID)
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, order.PaymentEFT, placed.Payment)
	assert.Equal(t, "https://files.example.com/proof.jpg", placed.ProofURL)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, int32(3), placed.Items[0].Quantity)
	assert.True(t, placed.Total.Equal(decimal.RequireFromString("149.97")),
		"order total should be 149.97, got %s", placed.Total)

	require.Len(t, orderStore.savedOrders(), 1, "order must be written to the document store")
	assert.Equal(t, 0, crt.Len(), "cart must be cleared after a successful checkout")

	cached, ok := cache.Get(placed.ID)
	require.True(t, ok, "order must be cached after the remote write")
	assert.Equal(t, placed.ID, cached.ID)

	published := publisher.published()
	require.Len(t, published, 1)
	event, ok := published[0].(events.OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, placed.ID, event.OrderID)
	assert.Equal(t, validCustomer().Email, event.CustomerEmail)
}

func Test_Service_PlaceOrder_EmptyCart(t *testing.T) {
	// given
	orderStore := &mockOrderStore{}
	svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())

	// when
	placed, err := svc.PlaceOrder(context.Background(), cart.New(), validCustomer(), order.PaymentCard, "")

	// then
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, placed)
	assert.Empty(t, orderStore.savedOrders())
}

func Test_Service_PlaceOrder_InvalidCustomer(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(c *order.Customer)
		expectedField string
	}{
		{
			name:          "missing name",
			mutate:        func(c *order.Customer) { c.Name = "" },
			expectedField: "Name",
		},
		{
			name:          "malformed email",
			mutate:        func(c *order.Customer) { c.Email = "not-an-email" },
			expectedField: "Email",
		},
		{
			name:          "phone too short",
			mutate:        func(c *order.Customer) { c.Phone = "123" },
			expectedField: "Phone",
		},
		{
			name:          "missing city",
			mutate:        func(c *order.Customer) { c.Address.City = "" },
			expectedField: "City",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			orderStore := &mockOrderStore{}
			svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())
			crt := filledCart(t)
			customer := validCustomer()
			tc.mutate(&customer)

			// when
			placed, err := svc.PlaceOrder(context.Background(), crt, customer, order.PaymentCard, "")

			// then
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tc.expectedField)
			assert.Nil(t, placed)
			assert.Empty(t, orderStore.savedOrders())
			assert.Equal(t, 1, crt.Len(), "failed validation must leave the cart intact")
		})
	}
}

func Test_Service_PlaceOrder_PersistenceFailure(t *testing.T) {
	// given
	orderStore := &mockOrderStore{putErr: errors.New("connection refused")}
	publisher := &mockPublisher{}
	cache := store.NewCache()
	svc := NewService(orderStore, cache, publisher, testLogger())
	crt := filledCart(t)

	// when
	placed, err := svc.PlaceOrder(context.Background(), crt, validCustomer(), order.PaymentCard, "")

	// then
	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Nil(t, placed)
	assert.Equal(t, 1, crt.Len(), "cart must stay intact so the shopper can retry")
	assert.Empty(t, publisher.published(), "no event may be published for an unsaved order")
}

func Test_Service_PlaceOrder_PublishFailureIsNotFatal(t *testing.T) {
	// given
	orderStore := &mockOrderStore{}
	publisher := &mockPublisher{err: errors.New("nats: no responders")}
	svc := NewService(orderStore, store.NewCache(), publisher, testLogger())
	crt := filledCart(t)

	// when
	placed, err := svc.PlaceOrder(context.Background(), crt, validCustomer(), order.PaymentCard, "")

	// then
	require.NoError(t, err, "a publish failure must not fail the checkout")
	require.NotNil(t, placed)
	assert.Equal(t, 0, crt.Len())
}

func Test_Service_PlaceOrder_SerializesPerCart(t *testing.T) {
	// given
	orderStore := &mockOrderStore{
		enterPut:   make(chan struct{}, 1),
		releasePut: make(chan struct{}),
	}
	svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())
	crt := filledCart(t)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder(context.Background(), crt, validCustomer(), order.PaymentCard, "")
		firstDone <- err
	}()
	<-orderStore.enterPut // first attempt is now inside the store write

	// when
	_, err := svc.PlaceOrder(context.Background(), crt, validCustomer(), order.PaymentCard, "")

	// then
	require.ErrorIs(t, err, ErrCheckoutInFlight)

	close(orderStore.releasePut)
	require.NoError(t, <-firstDone)
	assert.Len(t, orderStore.savedOrders(), 1, "exactly one order may be created per cart")
}

func Test_Service_PlaceOrder_SnapshotIsolation(t *testing.T) {
	// given
	orderStore := &mockOrderStore{}
	svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())
	crt := filledCart(t)

	// when
	placed, err := svc.PlaceOrder(context.Background(), crt, validCustomer(), order.PaymentCard, "")
	require.NoError(t, err)

	lily := catalog.Product{ID: 2, Name: "Lily Arrangement", Price: decimal.RequireFromString("65.00"), InStock: true}
	require.NoError(t, crt.AddItem(lily, 2, 1))

	// then
	require.Len(t, placed.Items, 1, "order items must not alias live cart state")
	assert.Equal(t, int64(1), placed.Items[0].ProductID)
	assert.True(t, placed.Total.Equal(decimal.RequireFromString("149.97")))
}

func Test_Service_Order(t *testing.T) {
	frozen := &order.Order{
		ID:      "ORD-1700000000000-0042",
		StoreID: 1,
		Total:   decimal.RequireFromString("149.97"),
		Status:  order.StatusPending,
	}

	t.Run("served from the document store", func(t *testing.T) {
		// given
		orderStore := &mockOrderStore{found: frozen}
		svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())

		// when
		found, err := svc.Order(context.Background(), frozen.ID)

		// then
		require.NoError(t, err)
		assert.Equal(t, frozen.ID, found.ID)
	})

	t.Run("not found passes through", func(t *testing.T) {
		// given
		orderStore := &mockOrderStore{findErr: order.ErrNotFound}
		svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())

		// when
		found, err := svc.Order(context.Background(), "ORD-0-0000")

		// then
		require.ErrorIs(t, err, order.ErrNotFound)
		assert.Nil(t, found)
	})

	t.Run("falls back to the cache when the store is unreachable", func(t *testing.T) {
		// given
		orderStore := &mockOrderStore{findErr: errors.New("connection refused")}
		cache := store.NewCache()
		cache.Put(frozen)
		svc := NewService(orderStore, cache, &mockPublisher{}, testLogger())

		// when
		found, err := svc.Order(context.Background(), frozen.ID)

		// then
		require.NoError(t, err)
		assert.Equal(t, frozen.ID, found.ID)
	})

	t.Run("store unreachable and cache miss is a persistence error", func(t *testing.T) {
		// given
		orderStore := &mockOrderStore{findErr: errors.New("connection refused")}
		svc := NewService(orderStore, store.NewCache(), &mockPublisher{}, testLogger())

		// when
		found, err := svc.Order(context.Background(), "ORD-0-0000")

		// then
		var persistenceErr *PersistenceError
		require.ErrorAs(t, err, &persistenceErr)
		assert.Nil(t, found)
	})
}
