package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
	"github.com/JoaoOliveiraaa/minishop/internal/utils"
)

// Paging limits list endpoints to sane page sizes.
func Paging(page, pageSize int) func(g *gorm.DB) *gorm.DB {
	return func(g *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = 10
		} else if pageSize > 100 {
			pageSize = 100
		}
		offset := (page - 1) * pageSize
		return g.Offset(offset).Limit(pageSize)
	}
}

type CreateVariationRequest struct {
	Type  string  `json:"type" binding:"required"`
	Value string  `json:"value" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
	Stock int     `json:"stock" binding:"gte=0"`
}

type CreateProductRequest struct {
	StoreID     uint    `json:"store_id" binding:"required"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DiscountPct float64 `json:"discount_pct" binding:"gte=0,lte=100"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock" binding:"gte=0"`
	IsNew       bool    `json:"is_new"`
	IsFeatured  bool    `json:"is_featured"`

	Variations []CreateVariationRequest `json:"variations"`
}

// POST /admin/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !slugPattern.MatchString(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug must be lowercase letters, digits and hyphens"})
		return
	}

	var store models.Store
	if err := db.DB.First(&store, req.StoreID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Store not found with ID: %d", req.StoreID)})
		return
	}

	// The category must belong to the same store as the product.
	var category models.Category
	if err := db.DB.Where("id = ? AND store_id = ?", req.CategoryID, req.StoreID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category not found with ID: %d", req.CategoryID)})
		return
	}

	var existing models.Product
	if err := db.DB.Where("store_id = ? AND slug = ?", req.StoreID, req.Slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "a product with that slug already exists in this store"})
		return
	}

	product := models.Product{
		StoreID:     req.StoreID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		DiscountPct: req.DiscountPct,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsNew:       req.IsNew,
		IsFeatured:  req.IsFeatured,
	}
	for _, v := range req.Variations {
		product.Variations = append(product.Variations, models.Variation{
			Type:  v.Type,
			Value: v.Value,
			Price: v.Price,
			Stock: v.Stock,
		})
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Preload("Category").Preload("Variations").First(&product, product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product with category details"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /stores/:slug/products
func ListProducts(c *gin.Context) {
	store, err := checkout.ResolveStore(c.Request.Context(), db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, checkout.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	query := db.DB.Model(&models.Product{}).Where("store_id = ?", store.ID)

	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}
	if c.Query("new") == "true" {
		query = query.Where("is_new = ?", true)
	}
	if catParam := c.Query("category_id"); catParam != "" {
		categoryID, err := strconv.ParseUint(catParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		categoryIDs, err := utils.CategoryTreeIDs(store.ID, uint(categoryID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("category_id IN ?", categoryIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count products"})
		return
	}

	var products []models.Product
	if err := query.Preload("Variations").Scopes(Paging(page, limit)).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"meta": gin.H{
			"total":     total,
			"page":      page,
			"limit":     limit,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GET /stores/:slug/products/:productSlug
func GetProduct(c *gin.Context) {
	store, err := checkout.ResolveStore(c.Request.Context(), db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, checkout.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.Preload("Category").Preload("Variations").
		Where("store_id = ? AND slug = ?", store.ID, c.Param("productSlug")).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /admin/products/average?store_id=&category_id=
// Average price over a category and all of its descendants within one store.
func GetAveragePrice(c *gin.Context) {
	storeIDParam := c.Query("store_id")
	categoryIDParam := c.Query("category_id")
	if storeIDParam == "" || categoryIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id and category_id are required"})
		return
	}

	var storeID, categoryID uint
	if _, err := fmt.Sscan(storeIDParam, &storeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store_id"})
		return
	}
	if _, err := fmt.Sscan(categoryIDParam, &categoryID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
		return
	}

	categoryIDs, err := utils.CategoryTreeIDs(storeID, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var avg float64
	err = db.DB.
		Model(&models.Product{}).
		Where("store_id = ? AND category_id IN ?", storeID, categoryIDs).
		Select("COALESCE(AVG(price), 0)").
		Scan(&avg).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store_id": storeID, "category_id": categoryID, "average_price": avg})
}
