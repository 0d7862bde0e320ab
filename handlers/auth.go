package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yourusername/acme-invoicing/config"
	"github.com/yourusername/acme-invoicing/middleware"
	"github.com/yourusername/acme-invoicing/models"
	"github.com/yourusername/acme-invoicing/utils"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB        *gorm.DB
	Cfg       *config.Config
	verifiers map[string]utils.CredentialsVerifierInterface
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		DB:  db,
		Cfg: cfg,
		verifiers: map[string]utils.CredentialsVerifierInterface{
			utils.CredentialsProviderKey: utils.NewGormCredentialsVerifier(db),
		},
	}
}

// Login forwards the credentials form to the fixed credentials provider and
// issues a token pair on success. Authentication faults get a user-facing
// message; anything else surfaces as a generic failure.
func (h *AuthHandler) Login(c *gin.Context) {
	creds := utils.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	verifier := h.verifiers[utils.CredentialsProviderKey]
	user, err := verifier.Verify(creds)
	if err != nil {
		var authErr *utils.AuthError
		if errors.As(err, &authErr) {
			switch authErr.Kind {
			case utils.AuthErrorInvalidCredentials:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Something went wrong."})
			}
			return
		}

		// Not an authentication outcome; report it as-is.
		log.Printf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	accessToken, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Cfg.JWTSecret, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Cfg.JWTRefreshSecret, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// RefreshToken request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate refresh token using the refresh secret
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Cfg.JWTRefreshSecret), nil
	})

	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token", "code": "InvalidToken"})
		return
	}

	// Fetch user from DB to ensure they still exist and are active
	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "User account is inactive"})
		return
	}

	// Issue new access and refresh tokens
	accessToken, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Cfg.JWTSecret, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Cfg.JWTRefreshSecret, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
