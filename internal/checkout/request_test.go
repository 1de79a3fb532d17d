package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
)

func validRequest() checkout.Request {
	return checkout.Request{
		Items: []checkout.LineItem{
			{ProductID: 1, Name: "Widget", Price: 100.0, Quantity: 2, ImageURL: "https://cdn.example/w.png"},
		},
		ShippingInfo: checkout.ShippingInfo{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Address: "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
		},
		TotalPrice:    200.0,
		StoreSlug:     "acme",
		PaymentMethod: "card",
	}
}

func TestValidate(t *testing.T) {

	t.Run("Valid request passes", func(t *testing.T) {
		req := validRequest()
		assert.Nil(t, req.Validate())
	})

	t.Run("Phone is optional", func(t *testing.T) {
		req := validRequest()
		req.ShippingInfo.Phone = ""
		assert.Nil(t, req.Validate())
	})

	t.Run("Reports every offending field, not just the first", func(t *testing.T) {
		req := checkout.Request{
			Items:         nil,
			ShippingInfo:  checkout.ShippingInfo{Email: "not-an-email"},
			StoreSlug:     "",
			PaymentMethod: "cash",
		}
		verr := req.Validate()
		assert.NotNil(t, verr)

		for _, field := range []string{
			"items",
			"shippingInfo.name",
			"shippingInfo.email",
			"shippingInfo.address",
			"shippingInfo.city",
			"shippingInfo.state",
			"shippingInfo.zipCode",
			"storeSlug",
			"paymentMethod",
		} {
			assert.Contains(t, verr.Fields, field)
		}
	})

	t.Run("Flags item-level failures with their index", func(t *testing.T) {
		req := validRequest()
		req.Items = append(req.Items, checkout.LineItem{ProductID: 0, Name: "", Price: -1, Quantity: 0})

		verr := req.Validate()
		assert.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "items[1].productId")
		assert.Contains(t, verr.Fields, "items[1].name")
		assert.Contains(t, verr.Fields, "items[1].price")
		assert.Contains(t, verr.Fields, "items[1].quantity")
		assert.NotContains(t, verr.Fields, "items[0].name")
	})

	t.Run("Rejects unknown payment methods", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = "crypto"
		verr := req.Validate()
		assert.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "paymentMethod")
	})

	t.Run("Accepts bank transfer", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = "bank-transfer"
		assert.Nil(t, req.Validate())
	})

	t.Run("Validation is deterministic and side-effect free", func(t *testing.T) {
		good := validRequest()
		before := good
		assert.Nil(t, good.Validate())
		assert.Nil(t, good.Validate())
		assert.Equal(t, before, good)

		bad := validRequest()
		bad.ShippingInfo.Email = "nope"
		bad.PaymentMethod = "nope"
		first := bad.Validate()
		second := bad.Validate()
		assert.Equal(t, first.Fields, second.Fields)
	})
}
