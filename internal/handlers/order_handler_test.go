package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/handlers"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

func setupOrderTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}
	if err := db.Migrate(testDB); err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	r.PATCH("/admin/orders/:id/payment-status", handlers.UpdatePaymentStatus)

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

func patchPaymentStatus(router *gin.Engine, orderID uint, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handlers.UpdatePaymentStatusRequest{PaymentStatus: status})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/orders/%d/payment-status", orderID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func seedOrder(testDB *gorm.DB, paymentStatus string) models.Order {
	order := models.Order{
		Number:        uuid.NewString(),
		StoreID:       1,
		CustomerID:    1,
		Status:        models.OrderStatusPending,
		Total:         100.0,
		PaymentMethod: models.PaymentMethodCard,
		PaymentStatus: paymentStatus,
		ShipName:      "Jane Doe",
		ShipEmail:     "jane@example.com",
		ShipAddress:   "1 Main St",
		ShipCity:      "Springfield",
		ShipState:     "IL",
		ShipZip:       "62701",
	}
	testDB.Create(&order)
	return order
}

func TestUpdatePaymentStatusHandler(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)

	t.Run("Confirms payment on an awaiting order", func(t *testing.T) {
		order := seedOrder(testDB, models.PaymentStatusAwaitingConfirmation)

		recorder := patchPaymentStatus(router, order.ID, models.PaymentStatusPaid)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var stored models.Order
		testDB.First(&stored, order.ID)
		assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	})

	t.Run("Rejects skipping the awaiting state", func(t *testing.T) {
		order := seedOrder(testDB, models.PaymentStatusPending)

		recorder := patchPaymentStatus(router, order.ID, models.PaymentStatusPaid)
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var stored models.Order
		testDB.First(&stored, order.ID)
		assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	})

	t.Run("Terminal states are final", func(t *testing.T) {
		order := seedOrder(testDB, models.PaymentStatusPaid)

		recorder := patchPaymentStatus(router, order.ID, models.PaymentStatusCancelled)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Cancelling payment cancels the order", func(t *testing.T) {
		order := seedOrder(testDB, models.PaymentStatusAwaitingTransfer)

		recorder := patchPaymentStatus(router, order.ID, models.PaymentStatusCancelled)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var stored models.Order
		testDB.First(&stored, order.ID)
		assert.Equal(t, models.PaymentStatusCancelled, stored.PaymentStatus)
		assert.Equal(t, models.OrderStatusCancelled, stored.Status)
	})

	t.Run("Returns 404 for an unknown order", func(t *testing.T) {
		recorder := patchPaymentStatus(router, 99999, models.PaymentStatusPaid)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
