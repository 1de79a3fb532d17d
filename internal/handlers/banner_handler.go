package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

type CreateBannerRequest struct {
	StoreID  uint   `json:"store_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Active   *bool  `json:"active"`
}

// POST /admin/banners
func CreateBanner(c *gin.Context) {
	var req CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var store models.Store
	if err := db.DB.First(&store, req.StoreID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Store not found with ID: %d", req.StoreID)})
		return
	}

	banner := models.Banner{
		StoreID:  req.StoreID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   true,
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}

	if err := db.DB.Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// DELETE /admin/banners/:id
func DeleteBanner(c *gin.Context) {
	result := db.DB.Delete(&models.Banner{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// GET /stores/:slug/banners — active banners only.
func ListBanners(c *gin.Context) {
	store, err := checkout.ResolveStore(c.Request.Context(), db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, checkout.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var banners []models.Banner
	if err := db.DB.Where("store_id = ? AND active = ?", store.ID, true).Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": banners})
}
