package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/message"

	"github.com/Cheertaboi/delivery-date-service/internal/delivery"
	"github.com/Cheertaboi/delivery-date-service/internal/i18n"
	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		fields := []string{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid_request", "fields": fields})
		return false
	}
	return true
}

// writeCheckError maps a rejected delivery-date request onto a status code
// and a localized message. Details stay in the log.
func writeCheckError(w http.ResponseWriter, r *http.Request, p *message.Printer, err error) {
	var (
		status = http.StatusUnprocessableEntity
		code   string
		key    string
	)
	switch {
	case errors.Is(err, delivery.ErrIntegrity):
		status, code, key = http.StatusForbidden, string(delivery.CodeIntegrity), i18n.KeySecurityFailed
	case errors.Is(err, delivery.ErrDateRequired):
		code, key = string(delivery.CodeDateRequired), i18n.KeyDateRequired
	case errors.Is(err, delivery.ErrInvalidDate):
		code, key = string(delivery.CodeInvalidDate), i18n.KeyInvalidFormat
	case errors.Is(err, delivery.ErrUnavailable):
		code, key = string(delivery.CodeDateUnavailable), i18n.KeyDateUnavailable
	default:
		status, code, key = http.StatusInternalServerError, "internal_error", i18n.KeyCheckError
	}
	log.Printf("delivery date rejected: %s %s: %s: %v", r.Method, r.URL.Path, code, err)
	writeJSON(w, status, models.CheckResult{Available: false, Code: code, Message: p.Sprintf(key)})
}

// cartFrom builds the cart for a request. A missing cart_items field means
// the storefront has no cart.
func cartFrom(sessionID string, items []models.CartItem) *models.Cart {
	if items == nil {
		return nil
	}
	return &models.Cart{SessionID: sessionID, Items: items}
}
