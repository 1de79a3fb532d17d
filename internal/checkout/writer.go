package checkout

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

// OrderDraft is everything the writer needs to persist an order: a
// resolved tenant, an authenticated customer, integrity-checked items
// and the authoritative total.
type OrderDraft struct {
	StoreID       uint
	CustomerID    uint
	Items         []LineItem
	Shipping      ShippingInfo
	PaymentMethod string
	Total         float64
}

// CreateOrder writes the order header and its items inside one
// transaction. A failure at any point rolls everything back, so a
// header without items is never readable.
func CreateOrder(g *gorm.DB, draft OrderDraft) (*models.Order, error) {
	tx := g.Begin()
	if tx.Error != nil {
		return nil, &PersistenceError{Err: tx.Error}
	}

	order := models.Order{
		Number:        uuid.NewString(),
		StoreID:       draft.StoreID,
		CustomerID:    draft.CustomerID,
		Status:        models.OrderStatusPending,
		Total:         draft.Total,
		PaymentMethod: draft.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		ShipName:      draft.Shipping.Name,
		ShipEmail:     draft.Shipping.Email,
		ShipPhone:     draft.Shipping.Phone,
		ShipAddress:   draft.Shipping.Address,
		ShipCity:      draft.Shipping.City,
		ShipState:     draft.Shipping.State,
		ShipZip:       draft.Shipping.ZipCode,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Err: err}
	}

	orderItems := make([]models.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		orderItems = append(orderItems, models.OrderItem{
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			ImageURL:   item.ImageURL,
			Variations: models.VariationMap(item.Variations),
		})
	}

	if err := tx.CreateInBatches(&orderItems, len(orderItems)).Error; err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	order.Items = orderItems
	return &order, nil
}
