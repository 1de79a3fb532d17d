package checkout

import (
	"context"

	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

// Pipeline runs a checkout submission through validation, tenant
// resolution, price verification, persistence and settlement, in that
// order. Each stage fails the whole submission; nothing is written
// before the price check passes.
type Pipeline struct {
	DB     *gorm.DB
	Router *Router
}

// Result is the successful outcome of a checkout. PaymentURL is empty
// on the bank-transfer path.
type Result struct {
	OrderID       uint
	OrderNumber   string
	StoreID       uint
	StoreName     string
	PaymentMethod string
	PaymentURL    string
}

// Run executes the full pipeline for an authenticated customer. The
// identity is passed in explicitly; the pipeline never consults ambient
// session state.
func (p *Pipeline) Run(ctx context.Context, customerID uint, req Request) (*Result, error) {
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	store, err := ResolveStore(ctx, p.DB, req.StoreSlug)
	if err != nil {
		return nil, err
	}

	total, err := VerifyTotal(req.Items, req.TotalPrice)
	if err != nil {
		return nil, err
	}

	order, err := CreateOrder(p.DB, OrderDraft{
		StoreID:       store.ID,
		CustomerID:    customerID,
		Items:         req.Items,
		Shipping:      req.ShippingInfo,
		PaymentMethod: req.PaymentMethod,
		Total:         total,
	})
	if err != nil {
		return nil, err
	}

	settlement, err := p.Router.Settle(ctx, p.DB, store, order)
	if err != nil {
		return nil, err
	}

	return &Result{
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		StoreID:       store.ID,
		StoreName:     store.Name,
		PaymentMethod: settlement.PaymentMethod,
		PaymentURL:    settlement.PaymentURL,
	}, nil
}

// Draft order state helper used by the settlement retry flow: only an
// order still pending settlement may be settled again.
func SettleableOrder(order *models.Order) bool {
	return order.PaymentStatus == models.PaymentStatusPending
}
