// Package app contains the application setup for the storefront service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/petalworks/storefront/internal/cart"
	"github.com/petalworks/storefront/internal/catalog"
	"github.com/petalworks/storefront/internal/checkout"
	"github.com/petalworks/storefront/internal/config"
	"github.com/petalworks/storefront/internal/order/store"
	"github.com/petalworks/storefront/internal/transport/rest"
	"github.com/petalworks/storefront/internal/upload"
	"github.com/petalworks/storefront/pkg/messaging"
	"github.com/petalworks/storefront/pkg/server"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	Catalog         *catalog.Catalog
	Sessions        *cart.Sessions
	CheckoutService checkout.CheckoutService
	Uploader        upload.Uploader
	Logger          *slog.Logger
}

func SetupDependencies(mongoClient *mongo.Client, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	coll := mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	checkoutService := checkout.NewService(store.NewMongoStore(coll), store.NewCache(), publisher, logger)

	return &Dependencies{
		Catalog:         catalog.Seed(),
		Sessions:        cart.NewSessions(),
		CheckoutService: checkoutService,
		Uploader:        upload.NewHTTPUploader(cfg.Upload),
		Logger:          logger,
	}
}

// SetupHttpHandler initializes the HTTP server and routes for the storefront application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Catalog, deps.Sessions, deps.CheckoutService, deps.Uploader, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the storefront application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
