package models

// ProductRules is the delivery metadata stored per product.
type ProductRules struct {
	ProductID    string   `json:"product_id"`
	Categories   []string `json:"categories"`
	UntilEnabled bool     `json:"until_enabled"`
	UntilDate    string   `json:"until_date,omitempty"`
	DeliveryDays []string `json:"delivery_days,omitempty"`
}
