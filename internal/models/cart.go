package models

// CartItem is one checkout line as the storefront reports it. Categories and
// delivery overrides are looked up server-side by ProductID.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty"`
}

// Cart is nil when the storefront has no cart for the session.
type Cart struct {
	SessionID string
	Items     []CartItem
}

// ProductIDs returns the distinct product ids in cart order.
func (c *Cart) ProductIDs() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool, len(c.Items))
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID == "" || seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		ids = append(ids, it.ProductID)
	}
	return ids
}
