package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

// GET /api/orders — the authenticated customer's order history, newest
// first, across all stores.
func ListMyOrders(c *gin.Context) {
	sess := sessions.Default(c)
	custID, ok := sess.Get("customer_id").(uint)
	if !ok || custID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := db.DB.Model(&models.Order{}).Where("customer_id = ?", custID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count orders"})
		return
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at DESC").Scopes(Paging(page, limit)).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
		"meta": gin.H{
			"total":     total,
			"page":      page,
			"limit":     limit,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GET /api/stores/:slug/orders/:id — a single order, reachable only
// through the store it was placed against and only by its owner.
func GetMyOrder(c *gin.Context) {
	sess := sessions.Default(c)
	custID, ok := sess.Get("customer_id").(uint)
	if !ok || custID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	store, err := checkout.ResolveStore(c.Request.Context(), db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, checkout.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := db.DB.Preload("Items").
		Where("id = ? AND store_id = ? AND customer_id = ?", c.Param("id"), store.ID, custID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// PATCH /admin/orders/:id/payment-status — the out-of-band confirmation
// surface. Transitions are only allowed along the payment state
// machine; terminal states are final.
func UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if !models.ValidPaymentTransition(order.PaymentStatus, req.PaymentStatus) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "invalid payment status transition",
			"from":  order.PaymentStatus,
			"to":    req.PaymentStatus,
		})
		return
	}

	updates := map[string]any{"payment_status": req.PaymentStatus}
	if req.PaymentStatus == models.PaymentStatusCancelled {
		updates["status"] = models.OrderStatusCancelled
	}

	if err := db.DB.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}
