// Package rest provides HTTP handlers for the storefront API.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/petalworks/storefront/internal/cart"
	"github.com/petalworks/storefront/internal/catalog"
	"github.com/petalworks/storefront/internal/checkout"
	"github.com/petalworks/storefront/internal/order"
	"github.com/petalworks/storefront/internal/upload"
	"github.com/petalworks/storefront/pkg/web"
	"github.com/shopspring/decimal"
)

type Handler struct {
	catalog  *catalog.Catalog
	sessions *cart.Sessions
	checkout checkout.CheckoutService
	uploader upload.Uploader
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates the storefront API handler with the provided collaborators.
func NewHandler(cat *catalog.Catalog, sessions *cart.Sessions, checkoutService checkout.CheckoutService, uploader upload.Uploader, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:  cat,
		sessions: sessions,
		checkout: checkoutService,
		uploader: uploader,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", h.ListStores)
		r.Get("/{id}", h.FindStoreByID)
	})

	r.Group(func(r chi.Router) {
		r.Use(web.SessionMiddleware)
		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productID}", h.UpdateQuantity)
			r.Delete("/items/{productID}", h.RemoveItem)
		})
		r.Post("/api/v1/checkout", h.Checkout)
		r.Post("/api/v1/checkout/proof", h.UploadProof)
	})

	r.Get("/api/v1/orders/{id}", h.FindOrderByID)
	r.Get("/healthz", h.HealthCheck)
}

// ListStores returns the stores for the requested region. A missing or
// unknown region returns the full catalog.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	region := catalog.Region(r.URL.Query().Get("region"))
	stores := h.catalog.ByRegion(region)
	mLogger.DebugContext(r.Context(), "Successfully listed stores", "region", region, "count", len(stores))
	web.RespondJSON(w, mLogger, http.StatusOK, stores)
}

// FindStoreByID retrieves a store profile by its ID.
func (h *Handler) FindStoreByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseNumericID(w, r, mLogger, "id")
	if !ok {
		return
	}

	store, err := h.catalog.ByID(id)
	if err != nil {
		mLogger.DebugContext(r.Context(), "Store not found", "ID", id)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Store with ID %d not found", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, store)
}

// cartView is the response shape for cart reads and mutations.
type cartView struct {
	Items []cart.Line     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func toCartView(snapshot cart.Snapshot) cartView {
	return cartView{Items: snapshot.Lines, Total: snapshot.Total}
}

// GetCart returns the session's current cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	crt, ok := h.sessionCart(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, toCartView(crt.Snapshot()))
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	StoreID   int64 `json:"store_id" validate:"required"`
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int32 `json:"quantity" validate:"omitempty,min=1"`
}

// AddItem resolves the product from the catalog and merges it into the
// session's cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	crt, ok := h.sessionCart(w, r, mLogger)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateStruct(w, r, mLogger, req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.ProductByID(req.StoreID, req.ProductID)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Catalog lookup miss on add to cart", "store_id", req.StoreID, "product_id", req.ProductID)
		web.RespondError(w, mLogger, http.StatusNotFound, "Product not found")
		return
	}

	if err := crt.AddItem(*product, req.StoreID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrMixedStoreCart) {
			web.RespondError(w, mLogger, http.StatusConflict, "Cart already holds items from another store")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error adding item to cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, toCartView(crt.Snapshot()))
}

// UpdateQuantityRequest is the payload for setting a line's quantity.
// A quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

// UpdateQuantity sets the quantity of a cart line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	crt, ok := h.sessionCart(w, r, mLogger)
	if !ok {
		return
	}
	productID, ok := web.ParseNumericID(w, r, mLogger, "productID")
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	crt.UpdateQuantity(productID, req.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, toCartView(crt.Snapshot()))
}

// RemoveItem removes a cart line. Removing an absent line succeeds.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	crt, ok := h.sessionCart(w, r, mLogger)
	if !ok {
		return
	}
	productID, ok := web.ParseNumericID(w, r, mLogger, "productID")
	if !ok {
		return
	}

	crt.RemoveItem(productID)
	web.RespondJSON(w, mLogger, http.StatusOK, toCartView(crt.Snapshot()))
}

// ClearCart empties the session's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	crt, ok := h.sessionCart(w, r, mLogger)
	if !ok {
		return
	}
	crt.Clear()
	web.RespondJSON(w, mLogger, http.StatusOK, toCartView(crt.Snapshot()))
}

// CheckoutRequest is the payload for placing an order.
type CheckoutRequest struct {
	Customer order.Customer `json:"customer" validate:"required"`
	Payment  string         `json:"payment_method" validate:"required,oneof=card eft cash_on_delivery"`
	ProofURL string         `json:"proof_url" validate:"omitempty,url"`
}

// Checkout places an order from the session's cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	crt, ok := h.sessionCart(w, r, mLogger)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateStruct(w, r, mLogger, req) {
		return
	}

	placed, err := h.checkout.PlaceOrder(r.Context(), crt, req.Customer, order.PaymentMethod(req.Payment), req.ProofURL)
	if err != nil {
		h.respondCheckoutError(w, r, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Order created successfully", slog.String("ID", placed.ID))
	web.RespondJSON(w, mLogger, http.StatusCreated, placed)
}

func (h *Handler) respondCheckoutError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error) {
	var validationErr *checkout.ValidationError
	var persistenceErr *checkout.PersistenceError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		web.RespondError(w, mLogger, http.StatusBadRequest, "Cart is empty")
	case errors.As(err, &validationErr):
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Fields)
		web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": validationErr.Fields})
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		web.RespondError(w, mLogger, http.StatusConflict, "A checkout for this cart is already in progress")
	case errors.As(err, &persistenceErr):
		mLogger.ErrorContext(r.Context(), "Order persistence failed", "error", err)
		web.RespondError(w, mLogger, http.StatusBadGateway, "Order could not be saved, please retry")
	default:
		mLogger.ErrorContext(r.Context(), "Error placing order", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to place order")
	}
}

// UploadProof accepts a multipart proof-of-payment file and returns its
// stored URL. Failures here never block order creation.
func (h *Handler) UploadProof(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	file, header, err := r.FormFile("file")
	if err != nil {
		mLogger.WarnContext(r.Context(), "Missing proof file in upload request", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Missing file")
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.uploader.Upload(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrUnauthorized):
			web.RespondError(w, mLogger, http.StatusUnauthorized, "Upload rejected")
		case errors.Is(err, upload.ErrCanceled):
			web.RespondError(w, mLogger, http.StatusBadRequest, "Upload canceled")
		default:
			mLogger.ErrorContext(r.Context(), "Proof upload failed", "error", err)
			web.RespondError(w, mLogger, http.StatusBadGateway, "Upload failed, you can retry or continue without proof")
		}
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"url": url})
}

// FindOrderByID retrieves a persisted order.
func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := r.PathValue("id")

	found, err := h.checkout.Order(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			mLogger.WarnContext(r.Context(), "Order not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving order", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusServiceUnavailable, fmt.Sprintf("Failed to retrieve order with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// sessionCart resolves the session's cart from the request context.
func (h *Handler) sessionCart(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*cart.Cart, bool) {
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return nil, false
	}
	return h.sessions.Get(sessionID), true
}

// validateStruct validates a request DTO and writes the field-level error
// response on failure.
func (h *Handler) validateStruct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, v any) bool {
	if err := h.validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
