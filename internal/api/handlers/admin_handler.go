package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
	"github.com/Cheertaboi/delivery-date-service/internal/service"
)

type ProductDeliveryRequest struct {
	UntilEnabled bool     `json:"until_enabled"`
	UntilDate    string   `json:"until_date" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDays []string `json:"delivery_days" validate:"max=7"`
}

type AdminHandler struct {
	service *service.DeliveryService
}

func NewAdminHandler(svc *service.DeliveryService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// GetSettings handles GET /admin/settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Settings(r.Context())
	if err != nil {
		log.Printf("load settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// SaveSettings handles PUT /admin/settings
// unknown weekdays and malformed dates are dropped, not rejected
func (h *AdminHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req models.StoreSettings
	if !decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := h.service.SaveSettings(r.Context(), req)
	if err != nil {
		log.Printf("save settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// SaveProductDelivery handles PUT /admin/products/{productID}/delivery
func (h *AdminHandler) SaveProductDelivery(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_product_id"})
		return
	}
	var req ProductDeliveryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := h.service.SaveProductRules(r.Context(), models.ProductRules{
		ProductID:    productID,
		UntilEnabled: req.UntilEnabled,
		UntilDate:    req.UntilDate,
		DeliveryDays: req.DeliveryDays,
	})
	if err != nil {
		log.Printf("save product %s delivery rules: %v", productID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
