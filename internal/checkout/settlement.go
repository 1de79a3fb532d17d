package checkout

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/models"
	"github.com/JoaoOliveiraaa/minishop/internal/payment"
)

// Settlement is the next step handed back to the customer after an
// order is created. PaymentURL is set only on the card path.
type Settlement struct {
	OrderID       uint
	OrderNumber   string
	PaymentMethod string
	PaymentURL    string
	PaymentRef    string
}

// Router branches on the order's payment method. The card path creates
// a hosted payment session with the external provider; the bank
// transfer path defers to offline instructions and touches no external
// system.
type Router struct {
	Gateway   payment.SessionCreator
	PublicURL string
}

// Settle initiates settlement for a freshly created (or still pending)
// order. On a card-path gateway failure the order row is kept: it is a
// real, if unpaid, intent, recognizable as unsettled by its pending
// payment status and nil payment reference.
func (r *Router) Settle(ctx context.Context, g *gorm.DB, store *models.Store, order *models.Order) (*Settlement, error) {
	switch order.PaymentMethod {
	case models.PaymentMethodCard:
		items := make([]payment.SessionItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, payment.SessionItem{
				Name:     item.Name,
				ImageURL: item.ImageURL,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}

		session, err := r.Gateway.CreateSession(ctx, payment.SessionRequest{
			Reference:  order.Number,
			Items:      items,
			SuccessURL: fmt.Sprintf("%s/stores/%s/checkout/success?order=%d", r.PublicURL, store.Slug, order.ID),
			CancelURL:  fmt.Sprintf("%s/stores/%s/checkout/cancel?order=%d", r.PublicURL, store.Slug, order.ID),
		})
		if err != nil {
			return nil, &SettlementError{OrderID: order.ID, Err: err}
		}

		updates := map[string]any{
			"payment_ref":    session.ID,
			"payment_status": models.PaymentStatusAwaitingConfirmation,
		}
		if err := g.Model(order).Updates(updates).Error; err != nil {
			return nil, &SettlementError{OrderID: order.ID, Err: err}
		}

		return &Settlement{
			OrderID:       order.ID,
			OrderNumber:   order.Number,
			PaymentMethod: order.PaymentMethod,
			PaymentURL:    session.URL,
			PaymentRef:    session.ID,
		}, nil

	case models.PaymentMethodBankTransfer:
		if err := g.Model(order).Update("payment_status", models.PaymentStatusAwaitingTransfer).Error; err != nil {
			return nil, &SettlementError{OrderID: order.ID, Err: err}
		}

		return &Settlement{
			OrderID:       order.ID,
			OrderNumber:   order.Number,
			PaymentMethod: order.PaymentMethod,
		}, nil

	default:
		// The validator rejects unknown methods before an order exists.
		return nil, &SettlementError{OrderID: order.ID, Err: fmt.Errorf("unsupported payment method %q", order.PaymentMethod)}
	}
}
