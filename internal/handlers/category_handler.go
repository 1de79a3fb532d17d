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

type CreateCategoryRequest struct {
	StoreID  uint   `json:"store_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// POST /admin/categories
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var store models.Store
	if err := db.DB.First(&store, req.StoreID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Store not found with ID: %d", req.StoreID)})
		return
	}

	if req.ParentID != nil {
		var parentCategory models.Category
		if err := db.DB.Where("id = ? AND store_id = ?", *req.ParentID, req.StoreID).First(&parentCategory).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Parent category not found with ID: %d", *req.ParentID)})
			return
		}
	}

	category := models.Category{
		StoreID:  req.StoreID,
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Preload("Parent").First(&category, category.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve category with parent details"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GET /stores/:slug/categories
func ListCategories(c *gin.Context) {
	store, err := checkout.ResolveStore(c.Request.Context(), db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, checkout.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var categories []models.Category
	if err := db.DB.Where("store_id = ?", store.ID).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}
