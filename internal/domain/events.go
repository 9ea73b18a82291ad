package domain

import "time"

type SettledItemMsg struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderSettledMessage is published to the broker after a checkout commits.
// Amounts travel as fixed two-decimal strings to keep consumers off floats.
type OrderSettledMessage struct {
	OrderNumber int              `json:"order_number"`
	PickupCode  string           `json:"pickup_code"`
	Items       []SettledItemMsg `json:"items"`
	Subtotal    string           `json:"subtotal"`
	Discount    string           `json:"discount"`
	Tax         string           `json:"tax"`
	Total       string           `json:"total"`
	LoyaltyID   string           `json:"loyalty_id,omitempty"`
	SettledAt   time.Time        `json:"settled_at"`
}
