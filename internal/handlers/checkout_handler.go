package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
	"github.com/JoaoOliveiraaa/minishop/internal/notifier"
)

// CreateCheckout runs a checkout submission through the order pipeline
// and maps its typed failures onto HTTP statuses. The settlement router
// is injected so tests can stub the payment gateway.
func CreateCheckout(router *checkout.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		custID, ok := sess.Get("customer_id").(uint)
		if !ok || custID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req checkout.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		pipeline := &checkout.Pipeline{DB: db.DB, Router: router}

		result, err := pipeline.Run(c.Request.Context(), custID, req)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		var customer models.Customer
		if dbErr := db.DB.First(&customer, custID).Error; dbErr == nil {
			go func(cust models.Customer, res checkout.Result) {
				if err := notifier.SendOrderEmail(cust.Email, cust.Name, res.StoreName, res.OrderNumber, req.TotalPrice); err != nil {
					log.Printf("Failed to send confirmation email for order %s: %v", res.OrderNumber, err)
				}
			}(customer, *result)

			if customer.Phone != "" {
				go func(cust models.Customer, res checkout.Result) {
					if err := notifier.SendOrderSMS(cust.Phone, res.StoreName, res.OrderNumber, req.TotalPrice); err != nil {
						log.Printf("Failed to send confirmation SMS for order %s: %v", res.OrderNumber, err)
					}
				}(customer, *result)
			}
		}

		if result.PaymentMethod == models.PaymentMethodCard {
			c.JSON(http.StatusCreated, gin.H{
				"orderId":    result.OrderID,
				"paymentUrl": result.PaymentURL,
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId":       result.OrderID,
			"paymentMethod": result.PaymentMethod,
		})
	}
}

// SettleOrder retries settlement for an order whose payment session was
// never created, so a gateway hiccup does not force the customer to
// resubmit the cart and create a duplicate order.
func SettleOrder(router *checkout.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		custID, ok := sess.Get("customer_id").(uint)
		if !ok || custID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var order models.Order
		if err := db.DB.Preload("Items").Where("id = ? AND customer_id = ?", c.Param("id"), custID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		if !checkout.SettleableOrder(&order) {
			c.JSON(http.StatusConflict, gin.H{"error": "order settlement already initiated"})
			return
		}

		var store models.Store
		if err := db.DB.First(&store, order.StoreID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store lookup failed"})
			return
		}

		settlement, err := router.Settle(c.Request.Context(), db.DB, &store, &order)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		if settlement.PaymentURL != "" {
			c.JSON(http.StatusOK, gin.H{"orderId": settlement.OrderID, "paymentUrl": settlement.PaymentURL})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": settlement.OrderID, "paymentMethod": settlement.PaymentMethod})
	}
}

func respondCheckoutError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Fields})
		return
	}

	if errors.Is(err, checkout.ErrStoreNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}

	var perr *checkout.PriceMismatchError
	if errors.As(err, &perr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "order total does not match its items",
			"details": gin.H{
				"claimed":  perr.Claimed,
				"computed": perr.Computed,
			},
		})
		return
	}

	var serr *checkout.SettlementError
	if errors.As(err, &serr) {
		log.Printf("Settlement initiation failed for order %d: %v", serr.OrderID, serr.Err)
		// The order header exists; hand the id back so the client can
		// retry settlement instead of recreating the order.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "payment initiation failed, please retry",
			"orderId": serr.OrderID,
		})
		return
	}

	log.Printf("Checkout failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed, please retry"})
}
