package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/middleware"
	"spendlog/internal/services"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name              string `json:"name" binding:"required,max=80"`
	Password          string `json:"password" binding:"required,min=8,max=128"`
	DefaultCurrencyID *uint  `json:"default_currency_id"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in a response
type UserResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DefaultCurrencyID *uint  `json:"default_currency_id,omitempty"`
}

// TokenResponse represents a successful login response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with a unique name, password, and optional default currency
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} UserResponse "User registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Default currency not found"
// @Failure     409 {object} ErrorResponse "Name already taken"
// @Router      /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Password, req.DefaultCurrencyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "user.register", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":                  user.ID,
			"name":                user.Name,
			"default_currency_id": user.DefaultCurrencyID,
		},
	})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and issue a bearer access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} TokenResponse "Access token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Authenticate(req.Name, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, "user.login", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
