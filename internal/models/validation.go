package models

// CheckResult is the verdict returned to the storefront.
type CheckResult struct {
	Available bool   `json:"available"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
}

// OrderDeliveryDate is the persisted delivery choice for an order.
type OrderDeliveryDate struct {
	OrderID      int64  `json:"order_id"`
	DeliveryDate string `json:"delivery_date"`
}
