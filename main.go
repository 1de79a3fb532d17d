package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	config "github.com/JoaoOliveiraaa/minishop/configs"
	"github.com/JoaoOliveiraaa/minishop/internal/auth"
	"github.com/JoaoOliveiraaa/minishop/internal/cache"
	"github.com/JoaoOliveiraaa/minishop/internal/checkout"
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/handlers"
	"github.com/JoaoOliveiraaa/minishop/internal/middleware"
	"github.com/JoaoOliveiraaa/minishop/internal/payment"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db.Init()
	cache.Init()
	auth.Init()

	payCfg := config.LoadPaymentConfig()
	settlementRouter := &checkout.Router{
		Gateway:   payment.NewClient(payCfg),
		PublicURL: payCfg.PublicURL,
	}

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions("minisess", store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.POST("/auth/register", middleware.RateLimiter(), auth.Register)
	r.POST("/auth/login", middleware.RateLimiter(), auth.Login)
	r.POST("/auth/logout", auth.Logout)
	r.GET("/auth/oidc/login", auth.OIDCLogin)
	r.GET("/auth/oidc/callback", auth.OIDCCallback)

	r.GET("/stores", handlers.ListStores)
	r.GET("/stores/:slug", handlers.GetStore)
	r.GET("/stores/:slug/products", handlers.ListProducts)
	r.GET("/stores/:slug/products/:productSlug", handlers.GetProduct)
	r.GET("/stores/:slug/categories", handlers.ListCategories)
	r.GET("/stores/:slug/banners", handlers.ListBanners)
	r.GET("/stores/:slug/settings", handlers.ListSettings)

	// ── customer API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.GET("/me", auth.Me)
		api.POST("/checkout", middleware.RateLimiter(), handlers.CreateCheckout(settlementRouter))
		api.POST("/orders/:id/settle", handlers.SettleOrder(settlementRouter))
		api.GET("/orders", handlers.ListMyOrders)
		api.GET("/stores/:slug/orders/:id", handlers.GetMyOrder)
	}

	// ── admin dashboard API ──
	r.POST("/admin/login", middleware.RateLimiter(), auth.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(auth.RequireAdmin())
	{
		admin.POST("/stores", handlers.CreateStore)
		admin.PATCH("/stores/:id", handlers.UpdateStore)
		admin.POST("/categories", handlers.CreateCategory)
		admin.POST("/products", handlers.CreateProduct)
		admin.GET("/products/average", handlers.GetAveragePrice)
		admin.PATCH("/orders/:id/payment-status", handlers.UpdatePaymentStatus)
		admin.POST("/banners", handlers.CreateBanner)
		admin.DELETE("/banners/:id", handlers.DeleteBanner)
		admin.PUT("/settings", handlers.UpsertSetting)
	}

	r.Run(":" + getEnv("PORT", "8080"))
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
