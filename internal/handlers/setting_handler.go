package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

type UpsertSettingRequest struct {
	StoreID uint   `json:"store_id" binding:"required"`
	Key     string `json:"key" binding:"required"`
	Value   string `json:"value"`
}

// PUT /admin/settings — create or overwrite one store setting.
func UpsertSetting(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var store models.Store
	if err := db.DB.First(&store, req.StoreID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Store not found with ID: %d", req.StoreID)})
		return
	}

	setting := models.Setting{StoreID: req.StoreID, Key: req.Key, Value: req.Value}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, setting)
}

// GET /stores/:slug/settings
func ListSettings(c *gin.Context) {
	store, err := checkout.ResolveStore(c.Request.Context(), db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, checkout.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var settings []models.Setting
	if err := db.DB.Where("store_id = ?", store.ID).Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}
