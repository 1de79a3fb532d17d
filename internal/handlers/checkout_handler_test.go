package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/handlers"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
	"github.com/JoaoOliveiraaa/minishop/internal/payment"
)

// stubGateway stands in for the hosted-payment provider.
type stubGateway struct {
	requests []payment.SessionRequest
	fail     bool
}

func (s *stubGateway) CreateSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	if s.fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	s.requests = append(s.requests, req)
	return &payment.Session{
		ID:  fmt.Sprintf("sess_%s", req.Reference[:8]),
		URL: "https://pay.sandbox.example/s/" + req.Reference,
	}, nil
}

func setupCheckoutTestRouter(t *testing.T, gateway *stubGateway) (*gin.Engine, *gorm.DB) {
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

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("minisess", store))

	settlementRouter := &checkout.Router{Gateway: gateway, PublicURL: "http://localhost:8080"}

	api := r.Group("/api")
	{
		api.POST("/checkout", handlers.CreateCheckout(settlementRouter))
		api.POST("/orders/:id/settle", handlers.SettleOrder(settlementRouter))
		api.GET("/stores/:slug/orders/:id", handlers.GetMyOrder)
	}

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

func createCheckoutRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func performCheckoutAuthenticatedRequest(router *gin.Engine, method, path string, body interface{}, customerID *uint) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := createCheckoutRequest(method, path, body)

	// Simulate the session middleware to mint an authenticated cookie.
	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	store := cookie.NewStore([]byte("test-secret-key"))
	sessions.Sessions("minisess", store)(tempC)

	session := sessions.Default(tempC)
	if customerID != nil {
		session.Set("customer_id", *customerID)
	} else {
		session.Delete("customer_id")
	}
	session.Save()

	req.Header.Set("Cookie", tempW.Header().Get("Set-Cookie"))

	router.ServeHTTP(recorder, req)
	return recorder
}

func checkoutBody(storeSlug, method string, totalPrice float64) checkout.Request {
	return checkout.Request{
		Items: []checkout.LineItem{
			{ProductID: 1, Name: "Widget", Price: 100.0, Quantity: 2, ImageURL: "https://cdn.example/w.png"},
		},
		ShippingInfo: checkout.ShippingInfo{
			Name: "Jane Doe", Email: "jane@example.com",
			Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701",
		},
		TotalPrice:    totalPrice,
		StoreSlug:     storeSlug,
		PaymentMethod: method,
	}
}

func TestCreateCheckoutHandler(t *testing.T) {

	gateway := &stubGateway{}
	router, testDB := setupCheckoutTestRouter(t, gateway)

	shop := models.Store{Name: "Acme Shop", Slug: "acme"}
	testDB.Create(&shop)
	otherShop := models.Store{Name: "Other Shop", Slug: "other"}
	testDB.Create(&otherShop)

	customer := models.Customer{Name: "Jane Doe", Email: "jane@example.com"}
	testDB.Create(&customer)

	t.Run("Card checkout returns a payment URL and records the session", func(t *testing.T) {
		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "card", 200.0), &custID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response struct {
			OrderID    uint   `json:"orderId"`
			PaymentURL string `json:"paymentUrl"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Greater(t, response.OrderID, uint(0))
		assert.NotEmpty(t, response.PaymentURL)

		var stored models.Order
		assert.NoError(t, testDB.Preload("Items").First(&stored, response.OrderID).Error)
		assert.Equal(t, shop.ID, stored.StoreID)
		assert.Equal(t, customer.ID, stored.CustomerID)
		assert.Equal(t, 200.0, stored.Total)
		assert.Equal(t, models.PaymentStatusAwaitingConfirmation, stored.PaymentStatus)
		assert.NotNil(t, stored.PaymentRef)
		assert.Len(t, stored.Items, 1)

		// The gateway saw the line items, not the bank-transfer path.
		assert.Len(t, gateway.requests, 1)
		assert.Equal(t, "Widget", gateway.requests[0].Items[0].Name)
		assert.Contains(t, gateway.requests[0].SuccessURL, "/stores/acme/checkout/success")
	})

	t.Run("Bank transfer checkout skips the gateway entirely", func(t *testing.T) {
		gatewayCallsBefore := len(gateway.requests)

		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "bank-transfer", 200.0), &custID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response struct {
			OrderID       uint   `json:"orderId"`
			PaymentMethod string `json:"paymentMethod"`
			PaymentURL    string `json:"paymentUrl"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Greater(t, response.OrderID, uint(0))
		assert.Equal(t, "bank-transfer", response.PaymentMethod)
		assert.Empty(t, response.PaymentURL)

		var stored models.Order
		assert.NoError(t, testDB.First(&stored, response.OrderID).Error)
		assert.Equal(t, models.PaymentStatusAwaitingTransfer, stored.PaymentStatus)
		assert.Nil(t, stored.PaymentRef)

		assert.Len(t, gateway.requests, gatewayCallsBefore)
	})

	t.Run("Rejects a tampered total and persists nothing", func(t *testing.T) {
		var before int64
		testDB.Model(&models.Order{}).Count(&before)

		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "card", 150.0), &custID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response struct {
			Error   string `json:"error"`
			Details struct {
				Claimed  float64 `json:"claimed"`
				Computed float64 `json:"computed"`
			} `json:"details"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, 150.0, response.Details.Claimed)
		assert.Equal(t, 200.0, response.Details.Computed)

		var after int64
		testDB.Model(&models.Order{}).Count(&after)
		assert.Equal(t, before, after)
	})

	t.Run("Returns 404 for an unknown store slug", func(t *testing.T) {
		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("nonexistent-store", "card", 200.0), &custID)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "store not found", response["error"])
	})

	t.Run("Returns 401 without a session", func(t *testing.T) {
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "card", 200.0), nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Returns field-level details for an invalid submission", func(t *testing.T) {
		body := checkoutBody("acme", "cash", 200.0)
		body.ShippingInfo.Email = "not-an-email"
		body.Items[0].Quantity = 0

		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", body, &custID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "validation failed", response.Error)
		assert.Contains(t, response.Details, "shippingInfo.email")
		assert.Contains(t, response.Details, "items[0].quantity")
		assert.Contains(t, response.Details, "paymentMethod")
	})

	t.Run("Order placed in one store is not readable through another", func(t *testing.T) {
		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "bank-transfer", 200.0), &custID)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response struct {
			OrderID uint `json:"orderId"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

		ownPath := fmt.Sprintf("/api/stores/acme/orders/%d", response.OrderID)
		recorder = performCheckoutAuthenticatedRequest(router, http.MethodGet, ownPath, nil, &custID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		crossPath := fmt.Sprintf("/api/stores/other/orders/%d", response.OrderID)
		recorder = performCheckoutAuthenticatedRequest(router, http.MethodGet, crossPath, nil, &custID)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestCheckoutSettlementFailure(t *testing.T) {

	gateway := &stubGateway{fail: true}
	router, testDB := setupCheckoutTestRouter(t, gateway)

	testDB.Create(&models.Store{Name: "Acme Shop", Slug: "acme"})
	customer := models.Customer{Name: "Jane Doe", Email: "jane@example.com"}
	testDB.Create(&customer)

	t.Run("Gateway failure keeps the order and returns its id", func(t *testing.T) {
		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "card", 200.0), &custID)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var response struct {
			Error   string `json:"error"`
			OrderID uint   `json:"orderId"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Greater(t, response.OrderID, uint(0))

		// The order is a real, if unpaid, intent: still pending, no ref.
		var stored models.Order
		assert.NoError(t, testDB.First(&stored, response.OrderID).Error)
		assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
		assert.Nil(t, stored.PaymentRef)
	})

	t.Run("Settlement can be retried without recreating the order", func(t *testing.T) {
		custID := customer.ID
		recorder := performCheckoutAuthenticatedRequest(router, http.MethodPost, "/api/checkout", checkoutBody("acme", "card", 200.0), &custID)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var failResp struct {
			OrderID uint `json:"orderId"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failResp))

		var ordersBefore int64
		testDB.Model(&models.Order{}).Count(&ordersBefore)

		// Gateway recovers; retry settlement on the same order.
		gateway.fail = false
		path := fmt.Sprintf("/api/orders/%d/settle", failResp.OrderID)
		recorder = performCheckoutAuthenticatedRequest(router, http.MethodPost, path, nil, &custID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var retryResp struct {
			OrderID    uint   `json:"orderId"`
			PaymentURL string `json:"paymentUrl"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &retryResp))
		assert.Equal(t, failResp.OrderID, retryResp.OrderID)
		assert.NotEmpty(t, retryResp.PaymentURL)

		var ordersAfter int64
		testDB.Model(&models.Order{}).Count(&ordersAfter)
		assert.Equal(t, ordersBefore, ordersAfter)

		var stored models.Order
		assert.NoError(t, testDB.First(&stored, failResp.OrderID).Error)
		assert.Equal(t, models.PaymentStatusAwaitingConfirmation, stored.PaymentStatus)
		assert.NotNil(t, stored.PaymentRef)

		// A second settle attempt is refused.
		recorder = performCheckoutAuthenticatedRequest(router, http.MethodPost, path, nil, &custID)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}
