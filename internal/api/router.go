package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/delivery-date-service/internal/api/handlers"
	"github.com/Cheertaboi/delivery-date-service/internal/api/middleware"
	"github.com/Cheertaboi/delivery-date-service/internal/service"
	"github.com/Cheertaboi/delivery-date-service/internal/token"
)

// NewRouter builds the HTTP router for the delivery-date-service.
// Order and admin routes require apiKey.
func NewRouter(svc *service.DeliveryService, signer *token.Signer, apiKey string) http.Handler {
	r := chi.NewRouter()

	deliveryHandler := handlers.NewDeliveryHandler(svc, signer)
	adminHandler := handlers.NewAdminHandler(svc)

	// Storefront endpoints
	r.Route("/delivery", func(r chi.Router) {
		r.Post("/session", deliveryHandler.StartSession)
		r.Post("/check", deliveryHandler.CheckDate)
		r.Post("/calendar", deliveryHandler.Calendar)
	})

	// Checkout backend
	r.Route("/orders/{orderID}", func(r chi.Router) {
		r.Use(middleware.RequireAPIKey(apiKey))
		r.Post("/delivery-date", deliveryHandler.SubmitOrderDate)
		r.Get("/delivery-date", deliveryHandler.GetOrderDate)
	})

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAPIKey(apiKey))
		r.Get("/settings", adminHandler.GetSettings)
		r.Put("/settings", adminHandler.SaveSettings)
		r.Put("/products/{productID}/delivery", adminHandler.SaveProductDelivery)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
