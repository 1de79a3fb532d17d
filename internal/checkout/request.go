package checkout

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

// LineItem is one cart line of a checkout submission. Name, price and
// image are the client's snapshot of the product at cart time; the
// price is re-verified server-side before anything is persisted.
type LineItem struct {
	ProductID  uint              `json:"productId"`
	Name       string            `json:"name"`
	Price      float64           `json:"price"`
	Quantity   uint              `json:"quantity"`
	ImageURL   string            `json:"imageUrl"`
	Variations map[string]string `json:"variations,omitempty"`
}

type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Request is the checkout submission payload.
type Request struct {
	Items         []LineItem   `json:"items"`
	ShippingInfo  ShippingInfo `json:"shippingInfo"`
	TotalPrice    float64      `json:"totalPrice"`
	StoreSlug     string       `json:"storeSlug"`
	PaymentMethod string       `json:"paymentMethod"`
}

// Validate checks every field of the request and reports all failures
// at once. It is deterministic and has no side effects; nothing
// downstream re-inspects raw input after it passes.
func (r *Request) Validate() *ValidationError {
	fields := map[string]string{}

	if len(r.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range r.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		if item.ProductID == 0 {
			fields[prefix+".productId"] = "product id is required"
		}
		if strings.TrimSpace(item.Name) == "" {
			fields[prefix+".name"] = "name is required"
		}
		if item.Price < 0 {
			fields[prefix+".price"] = "price must not be negative"
		}
		if item.Quantity == 0 {
			fields[prefix+".quantity"] = "quantity must be a positive integer"
		}
	}

	requireShipping(fields, "shippingInfo.name", r.ShippingInfo.Name)
	requireShipping(fields, "shippingInfo.address", r.ShippingInfo.Address)
	requireShipping(fields, "shippingInfo.city", r.ShippingInfo.City)
	requireShipping(fields, "shippingInfo.state", r.ShippingInfo.State)
	requireShipping(fields, "shippingInfo.zipCode", r.ShippingInfo.ZipCode)

	if strings.TrimSpace(r.ShippingInfo.Email) == "" {
		fields["shippingInfo.email"] = "is required"
	} else if _, err := mail.ParseAddress(r.ShippingInfo.Email); err != nil {
		fields["shippingInfo.email"] = "must be a valid email address"
	}

	if strings.TrimSpace(r.StoreSlug) == "" {
		fields["storeSlug"] = "is required"
	}

	switch r.PaymentMethod {
	case models.PaymentMethodCard, models.PaymentMethodBankTransfer:
	default:
		fields["paymentMethod"] = fmt.Sprintf("must be %q or %q", models.PaymentMethodCard, models.PaymentMethodBankTransfer)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func requireShipping(fields map[string]string, key, value string) {
	if strings.TrimSpace(value) == "" {
		fields[key] = "is required"
	}
}
