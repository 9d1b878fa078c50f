package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petalworks/storefront/internal/cart"
	"github.com/petalworks/storefront/internal/catalog"
	"github.com/petalworks/storefront/internal/checkout"
	"github.com/petalworks/storefront/internal/order"
	"github.com/petalworks/storefront/internal/upload"
	"github.com/petalworks/storefront/pkg/web"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCheckoutService is a mock implementation of the CheckoutService interface
type mockCheckoutService struct {
	placed   *order.Order
	placeErr error
	found    *order.Order
	findErr  error
}

func (m *mockCheckoutService) PlaceOrder(_ context.Context, _ *cart.Cart, _ order.Customer, _ order.PaymentMethod, _ string) (*order.Order, error) {
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	return m.placed, nil
}

func (m *mockCheckoutService) Order(_ context.Context, _ string) (*order.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.found, nil
}

// mockUploader is a mock implementation of the upload.Uploader interface
type mockUploader struct {
	url string
	err error
}

func (m *mockUploader) Upload(_ context.Context, _ string, _ io.Reader, _ int64, _ ...upload.Option) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestHandler(svc checkout.CheckoutService, uploader upload.Uploader, sessions *cart.Sessions) *Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(catalog.Seed(), sessions, svc, uploader, logger)
}

// withSession attaches a shopper session to the request context.
func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(web.WithSessionID(req.Context(), sessionID))
}

func Test_StoreAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		storeID      string
		expectedCode int
		expectedName string
	}{
		{
			name:         "Success - store found",
			storeID:      "1",
			expectedCode: http.StatusOK,
			expectedName: "Bloom & Wild Gardens",
		},
		{
			name:         "Error - store not found",
			storeID:      "42",
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - invalid id",
			storeID:      "not-a-number",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, cart.NewSessions())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/"+tc.storeID, nil)
			req.SetPathValue("id", tc.storeID)
			rr := httptest.NewRecorder()

			// when
			api.FindStoreByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedName != "" {
				var store catalog.StoreProfile
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &store))
				assert.Equal(t, tc.expectedName, store.Name)
			}
		})
	}
}

func Test_StoreAPI_List(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		expectedCount int
	}{
		{
			name:          "filters by region",
			query:         "?region=cape-town",
			expectedCount: 2,
		},
		{
			name:          "unknown region returns all stores",
			query:         "?region=atlantis",
			expectedCount: 3,
		},
		{
			name:          "missing region returns all stores",
			query:         "",
			expectedCount: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, cart.NewSessions())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stores"+tc.query, nil)
			rr := httptest.NewRecorder()

			// when
			api.ListStores(rr, req)

			// then
			assert.Equal(t, http.StatusOK, rr.Code)
			var stores []catalog.StoreProfile
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stores))
			assert.Len(t, stores, tc.expectedCount)
		})
	}
}

func Test_CartAPI_AddItem(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		sessionID    string
		expectedCode int
	}{
		{
			name:         "Success - item added",
			body:         `{"store_id":1,"product_id":1,"quantity":2}`,
			sessionID:    "sess-1",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Success - quantity defaults to one",
			body:         `{"store_id":1,"product_id":1}`,
			sessionID:    "sess-1",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - missing session",
			body:         `{"store_id":1,"product_id":1,"quantity":1}`,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Error - unknown product",
			body:         `{"store_id":1,"product_id":999,"quantity":1}`,
			sessionID:    "sess-1",
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - negative quantity",
			body:         `{"store_id":1,"product_id":1,"quantity":-2}`,
			sessionID:    "sess-1",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - malformed body",
			body:         `{"store_id":`,
			sessionID:    "sess-1",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, cart.NewSessions())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(tc.body))
			if tc.sessionID != "" {
				req = withSession(req, tc.sessionID)
			}
			rr := httptest.NewRecorder()

			// when
			api.AddItem(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
		})
	}
}

func Test_CartAPI_AddItem_RejectsSecondStore(t *testing.T) {
	// given
	sessions := cart.NewSessions()
	api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, sessions)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"store_id":1,"product_id":1,"quantity":1}`))
	first = withSession(first, "sess-1")
	rr := httptest.NewRecorder()
	api.AddItem(rr, first)
	require.Equal(t, http.StatusOK, rr.Code)

	// when: an item from another store lands in the same session's cart
	second := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"store_id":2,"product_id":1,"quantity":1}`))
	second = withSession(second, "sess-1")
	rr = httptest.NewRecorder()
	api.AddItem(rr, second)

	// then
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 1, sessions.Get("sess-1").Len())
}

func Test_CartAPI_Lifecycle(t *testing.T) {
	// given
	sessions := cart.NewSessions()
	api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, sessions)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"store_id":1,"product_id":1,"quantity":1}`))
	add = withSession(add, "sess-1")
	rr := httptest.NewRecorder()
	api.AddItem(rr, add)
	require.Equal(t, http.StatusOK, rr.Code)

	// when: quantity bumped to 3
	update := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", strings.NewReader(`{"quantity":3}`))
	update = withSession(update, "sess-1")
	update.SetPathValue("productID", "1")
	rr = httptest.NewRecorder()
	api.UpdateQuantity(rr, update)

	// then
	require.Equal(t, http.StatusOK, rr.Code)
	var view struct {
		Items []cart.Line     `json:"items"`
		Total decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, int32(3), view.Items[0].Quantity)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("149.97")),
		"3 x 49.99 must total exactly 149.97, got %s", view.Total)

	// when: the line is removed
	remove := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1", nil)
	remove = withSession(remove, "sess-1")
	remove.SetPathValue("productID", "1")
	rr = httptest.NewRecorder()
	api.RemoveItem(rr, remove)

	// then
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, sessions.Get("sess-1").Len())
}

func Test_CartAPI_SessionsAreIsolated(t *testing.T) {
	// given
	sessions := cart.NewSessions()
	api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, sessions)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"store_id":1,"product_id":1,"quantity":1}`))
	add = withSession(add, "sess-1")
	rr := httptest.NewRecorder()
	api.AddItem(rr, add)
	require.Equal(t, http.StatusOK, rr.Code)

	// when
	get := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	get = withSession(get, "sess-2")
	rr = httptest.NewRecorder()
	api.GetCart(rr, get)

	// then
	require.Equal(t, http.StatusOK, rr.Code)
	var view struct {
		Items []cart.Line `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Empty(t, view.Items, "another session must see its own empty cart")
}

func Test_CheckoutAPI(t *testing.T) {
	validBody := `{
		"customer": {
			"name": "Thandi Mokoena",
			"email": "thandi@example.com",
			"phone": "+27215550123",
			"address": {"street": "12 Kloof Street", "city": "Cape Town", "postal_code": "8001"}
		},
		"payment_method": "eft"
	}`

	placed := &order.Order{
		ID:      "ORD-1700000000000-0042",
		StoreID: 1,
		Total:   decimal.RequireFromString("149.97"),
		Status:  order.StatusPending,
	}

	testCases := []struct {
		name         string
		mockService  mockCheckoutService
		body         string
		expectedCode int
	}{
		{
			name:         "Success - order placed",
			mockService:  mockCheckoutService{placed: placed},
			body:         validBody,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - empty cart",
			mockService:  mockCheckoutService{placeErr: checkout.ErrEmptyCart},
			body:         validBody,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - customer fields rejected",
			mockService:  mockCheckoutService{placeErr: &checkout.ValidationError{Fields: map[string]string{"Email": "failed on rule: email"}}},
			body:         validBody,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - checkout already in flight",
			mockService:  mockCheckoutService{placeErr: checkout.ErrCheckoutInFlight},
			body:         validBody,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Error - order store unreachable",
			mockService:  mockCheckoutService{placeErr: &checkout.PersistenceError{Err: errors.New("connection refused")}},
			body:         validBody,
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "Error - unknown payment method",
			mockService:  mockCheckoutService{placed: placed},
			body:         strings.Replace(validBody, `"eft"`, `"barter"`, 1),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - malformed body",
			mockService:  mockCheckoutService{placed: placed},
			body:         `{"customer":`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService, &mockUploader{}, cart.NewSessions())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(tc.body))
			req = withSession(req, "sess-1")
			rr := httptest.NewRecorder()

			// when
			api.Checkout(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedCode == http.StatusCreated {
				var got order.Order
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, placed.ID, got.ID)
			}
		})
	}
}

func Test_OrderAPI_FindByID(t *testing.T) {
	found := &order.Order{
		ID:     "ORD-1700000000000-0042",
		Status: order.StatusPending,
		Total:  decimal.RequireFromString("149.97"),
	}

	testCases := []struct {
		name         string
		mockService  mockCheckoutService
		orderID      string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - order found",
			mockService:  mockCheckoutService{found: found},
			orderID:      found.ID,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - order not found",
			mockService:  mockCheckoutService{findErr: order.ErrNotFound},
			orderID:      "ORD-0-0000",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Order with ID ORD-0-0000 not found"}),
		},
		{
			name:         "Error - store unreachable",
			mockService:  mockCheckoutService{findErr: &checkout.PersistenceError{Err: errors.New("connection refused")}},
			orderID:      "ORD-0-0000",
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve order with ID ORD-0-0000"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService, &mockUploader{}, cart.NewSessions())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+tc.orderID, nil)
			req.SetPathValue("id", tc.orderID)
			rr := httptest.NewRecorder()

			// when
			api.FindOrderByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			}
		})
	}
}

// multipartProofRequest builds a multipart request carrying a proof file.
func multipartProofRequest(t *testing.T) *http.Request {
	t.Helper()
	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "proof.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/proof", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return withSession(req, "sess-1")
}

func Test_UploadAPI(t *testing.T) {
	testCases := []struct {
		name         string
		uploader     mockUploader
		expectedCode int
	}{
		{
			name:         "Success - proof stored",
			uploader:     mockUploader{url: "https://files.example.com/proof.jpg"},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - upload rejected",
			uploader:     mockUploader{err: upload.ErrUnauthorized},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Error - upload canceled",
			uploader:     mockUploader{err: upload.ErrCanceled},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - endpoint down",
			uploader:     mockUploader{err: upload.ErrUploadFailed},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&mockCheckoutService{}, &tc.uploader, cart.NewSessions())
			req := multipartProofRequest(t)
			rr := httptest.NewRecorder()

			// when
			api.UploadProof(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedCode == http.StatusOK {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "https://files.example.com/proof.jpg", resp["url"])
			}
		})
	}
}

func Test_UploadAPI_MissingFile(t *testing.T) {
	// given
	api := newTestHandler(&mockCheckoutService{}, &mockUploader{}, cart.NewSessions())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/proof", strings.NewReader(""))
	req = withSession(req, "sess-1")
	rr := httptest.NewRecorder()

	// when
	api.UploadProof(rr, req)

	// then
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
