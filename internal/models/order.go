package models

import "time"

// Order lifecycle statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses. An order starts at pending, moves to one of the two
// awaiting states when settlement is initiated, and ends in a terminal
// state. Terminal states never transition again.
const (
	PaymentStatusPending              = "pending"
	PaymentStatusAwaitingConfirmation = "awaiting_confirmation" // card: hosted session created
	PaymentStatusAwaitingTransfer     = "awaiting_transfer"     // bank transfer: offline instructions shown
	PaymentStatusPaid                 = "paid"
	PaymentStatusFailed               = "failed"
	PaymentStatusCancelled            = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank-transfer"
)

var paymentTransitions = map[string][]string{
	PaymentStatusPending:              {PaymentStatusAwaitingConfirmation, PaymentStatusAwaitingTransfer, PaymentStatusCancelled},
	PaymentStatusAwaitingConfirmation: {PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusAwaitingTransfer:     {PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled},
}

// ValidPaymentTransition reports whether payment status may move from one
// state to the next. Terminal states have no outgoing transitions.
func ValidPaymentTransition(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Number     string `gorm:"uniqueIndex;not null" json:"number"`
	StoreID    uint   `gorm:"index;not null" json:"store_id"`
	CustomerID uint   `gorm:"index;not null" json:"customer_id"`

	Status        string  `gorm:"not null" json:"status"`
	Total         float64 `gorm:"not null" json:"total"` // server-computed, authoritative
	PaymentMethod string  `gorm:"not null" json:"payment_method"`
	PaymentStatus string  `gorm:"not null" json:"payment_status"`
	PaymentRef    *string `json:"payment_ref"` // external session reference, nil until settlement starts

	// Shipping snapshot, copied at creation time. Never a live reference.
	ShipName    string `gorm:"not null" json:"ship_name"`
	ShipEmail   string `gorm:"not null" json:"ship_email"`
	ShipPhone   string `json:"ship_phone"`
	ShipAddress string `gorm:"not null" json:"ship_address"`
	ShipCity    string `gorm:"not null" json:"ship_city"`
	ShipState   string `gorm:"not null" json:"ship_state"`
	ShipZip     string `gorm:"not null" json:"ship_zip"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store    Store       `json:"-"`
	Customer Customer    `json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// VariationMap is the selected-variation snapshot on an order item
// (type -> value, e.g. "size" -> "M").
type VariationMap map[string]string

// OrderItem denormalizes the product's name, price and image at order
// time so the order history stays stable when the catalog changes.
type OrderItem struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	OrderID    uint         `gorm:"index;not null" json:"order_id"`
	ProductID  uint         `gorm:"index;not null" json:"product_id"`
	Name       string       `gorm:"not null" json:"name"`
	Price      float64      `gorm:"not null" json:"price"`
	Quantity   uint         `gorm:"not null" json:"quantity"`
	ImageURL   string       `json:"image_url"`
	Variations VariationMap `gorm:"serializer:json" json:"variations,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
