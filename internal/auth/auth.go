package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

var (
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
)

// Init sets up the optional OIDC social-login flow. Password login
// works regardless; without OIDC_ISSUER the /auth/oidc routes return
// 503.
func Init() {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		log.Println("OIDC_ISSUER not set, social login disabled")
		return
	}

	ctx := context.Background()

	var err error
	provider, err = oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	verifier = provider.Verifier(&oidc.Config{ClientID: os.Getenv("OIDC_CLIENT_ID")})

	oauth2Config = &oauth2.Config{
		ClientID:     os.Getenv("OIDC_CLIENT_ID"),
		ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	cust := models.Customer{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		PasswordHash: string(hashed),
	}
	if err := db.DB.Create(&cust).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "an account with that email already exists"})
		return
	}

	setCustomerSession(c, cust.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "registered", "customer": cust})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cust models.Customer
	if err := db.DB.Where("email = ?", strings.ToLower(req.Email)).First(&cust).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	setCustomerSession(c, cust.ID)
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "customer": cust})
}

// POST /auth/logout
func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete("customer_id")
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /auth/oidc/login
func OIDCLogin(c *gin.Context) {
	if oauth2Config == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "social login is not configured"})
		return
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate state"})
		return
	}
	state := hex.EncodeToString(buf)

	sess := sessions.Default(c)
	sess.Set("oidc_state", state)
	_ = sess.Save()

	c.Redirect(http.StatusFound, oauth2Config.AuthCodeURL(state))
}

// GET /auth/oidc/callback
func OIDCCallback(c *gin.Context) {
	if oauth2Config == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "social login is not configured"})
		return
	}

	sess := sessions.Default(c)
	expectedState, _ := sess.Get("oidc_state").(string)
	sess.Delete("oidc_state")
	_ = sess.Save()
	if expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone_number"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	// Upsert customer
	var cust models.Customer
	if err := db.DB.Where("oidc_id = ?", claims.Sub).First(&cust).Error; err != nil {
		cust = models.Customer{
			OIDCID: claims.Sub,
			Name:   claims.Name,
			Email:  strings.ToLower(claims.Email),
			Phone:  claims.Phone,
		}
		db.DB.Create(&cust)
	}

	setCustomerSession(c, cust.ID)
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "customer": cust})
}

// RequireAuth ensures the customer is logged in and injects
// *models.Customer into the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		custID, ok := sess.Get("customer_id").(uint)
		if !ok || custID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var cust models.Customer
		if err := db.DB.First(&cust, custID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("customer", &cust)
		c.Next()
	}
}

// GET /api/me
func Me(c *gin.Context) {
	cust, ok := CurrentCustomer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, cust)
}

// CurrentCustomer returns the customer injected by RequireAuth.
func CurrentCustomer(c *gin.Context) (*models.Customer, bool) {
	v, ok := c.Get("customer")
	if !ok {
		return nil, false
	}
	cust, ok := v.(*models.Customer)
	return cust, ok
}

func setCustomerSession(c *gin.Context, id uint) {
	sess := sessions.Default(c)
	sess.Set("customer_id", id)
	_ = sess.Save()
}
