package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/delivery-date-service/internal/delivery"
	"github.com/Cheertaboi/delivery-date-service/internal/i18n"
	"github.com/Cheertaboi/delivery-date-service/internal/models"
	"github.com/Cheertaboi/delivery-date-service/internal/service"
	"github.com/Cheertaboi/delivery-date-service/internal/token"
)

// --- Request / Response DTOs ---

type SessionRequest struct {
	SessionID string            `json:"session_id" validate:"required,max=128"`
	CartItems []models.CartItem `json:"cart_items" validate:"omitempty,dive"`
}

type SessionResponse struct {
	Token    string            `json:"token"`
	Rules    delivery.Rules    `json:"rules"`
	MaxDate  delivery.Date     `json:"max_date"`
	Messages map[string]string `json:"messages"`
}

type CheckRequest struct {
	Date      string            `json:"date"`
	Security  string            `json:"security"`
	SessionID string            `json:"session_id" validate:"required,max=128"`
	CartItems []models.CartItem `json:"cart_items" validate:"omitempty,dive"`
}

type CalendarRequest struct {
	Month     string            `json:"month" validate:"required,datetime=2006-01"`
	CartItems []models.CartItem `json:"cart_items" validate:"omitempty,dive"`
}

type CalendarResponse struct {
	Month string         `json:"month"`
	Days  []delivery.Day `json:"days"`
}

type SubmitRequest struct {
	Date      string            `json:"date"`
	SessionID string            `json:"session_id"`
	CartItems []models.CartItem `json:"cart_items" validate:"omitempty,dive"`
}

type OrderDateResponse struct {
	OrderID      int64         `json:"order_id"`
	DeliveryDate delivery.Date `json:"delivery_date"`
	Display      string        `json:"display"`
	Label        string        `json:"label"`
	Message      string        `json:"message,omitempty"`
}

// --- Handler struct & constructor ---

type DeliveryHandler struct {
	service *service.DeliveryService
	signer  *token.Signer
}

func NewDeliveryHandler(svc *service.DeliveryService, signer *token.Signer) *DeliveryHandler {
	return &DeliveryHandler{service: svc, signer: signer}
}

// --- Handlers ---

// StartSession handles POST /delivery/session
// issues the integrity token and the rules the picker renders from
func (h *DeliveryHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p := i18n.Printer(i18n.ResolveTag(r))

	rules, err := h.service.Rules(r.Context(), cartFrom(req.SessionID, req.CartItems))
	if err != nil {
		log.Printf("resolve rules: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	tok, err := h.signer.Issue(req.SessionID)
	if err != nil {
		log.Printf("issue token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Token:   tok,
		Rules:   rules,
		MaxDate: rules.MaxDate(),
		Messages: map[string]string{
			"label":         p.Sprintf(i18n.KeyDeliveryDate),
			"placeholder":   p.Sprintf(i18n.KeySelectDate),
			"date_required": p.Sprintf(i18n.KeyDateRequired),
			"unavailable":   p.Sprintf(i18n.KeyDateUnavailable),
		},
	})
}

// CheckDate handles POST /delivery/check
// integrity is verified before the date is even parsed
func (h *DeliveryHandler) CheckDate(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p := i18n.Printer(i18n.ResolveTag(r))

	if err := h.signer.Verify(req.Security, req.SessionID); err != nil {
		writeCheckError(w, r, p, err)
		return
	}

	if _, err := h.service.CheckDate(r.Context(), cartFrom(req.SessionID, req.CartItems), req.Date); err != nil {
		writeCheckError(w, r, p, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CheckResult{Available: true, Message: p.Sprintf(i18n.KeyDateAvailable)})
}

// Calendar handles POST /delivery/calendar
func (h *DeliveryHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	var req CalendarRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	days, err := h.service.Calendar(r.Context(), cartFrom("", req.CartItems), req.Month)
	if err != nil {
		if delivery.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_month"})
			return
		}
		log.Printf("calendar %s: %v", req.Month, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, CalendarResponse{Month: req.Month, Days: days})
}

// SubmitOrderDate handles POST /orders/{orderID}/delivery-date
// the date is re-checked against the current cart before it is stored
func (h *DeliveryHandler) SubmitOrderDate(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	var req SubmitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p := i18n.Printer(i18n.ResolveTag(r))

	d, err := h.service.SubmitDeliveryDate(r.Context(), orderID, cartFrom(req.SessionID, req.CartItems), req.Date)
	if err != nil {
		writeCheckError(w, r, p, err)
		return
	}

	writeJSON(w, http.StatusCreated, OrderDateResponse{
		OrderID:      orderID,
		DeliveryDate: d,
		Display:      d.Display(),
		Label:        p.Sprintf(i18n.KeyDeliveryDate),
		Message:      p.Sprintf(i18n.KeyDeliveryDateSave, d.Display(), strconv.FormatInt(orderID, 10)),
	})
}

// GetOrderDate handles GET /orders/{orderID}/delivery-date
func (h *DeliveryHandler) GetOrderDate(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	p := i18n.Printer(i18n.ResolveTag(r))

	d, err := h.service.OrderDeliveryDate(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
			return
		}
		log.Printf("order %d delivery date: %v", orderID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, OrderDateResponse{
		OrderID:      orderID,
		DeliveryDate: d,
		Display:      d.Display(),
		Label:        p.Sprintf(i18n.KeyDeliveryDate),
	})
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_order_id"})
		return 0, false
	}
	return id, true
}
