package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/services"
)

// CurrencyHandler handles currency-related requests
type CurrencyHandler struct {
	currencyService services.CurrencyServicer
	auditService    services.AuditServicer
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService services.CurrencyServicer, auditService services.AuditServicer) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService, auditService: auditService}
}

// CreateCurrencyRequest represents the request payload for registering a currency
type CreateCurrencyRequest struct {
	Name string `json:"name" binding:"required,iso4217"`
}

// CurrencyResponse represents a currency in the response
type CurrencyResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateCurrency handles the registration of a new currency
// @Summary     Register a currency
// @Description Register a new ISO 4217 currency code
// @Tags        currencies
// @Accept      json
// @Produce     json
// @Param       request body CreateCurrencyRequest true "Currency code"
// @Success     201 {object} CurrencyResponse "Currency registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Currency already registered"
// @Router      /currency [post]
func (h *CurrencyHandler) CreateCurrency(c *gin.Context) {
	var req CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	currency, err := h.currencyService.CreateCurrency(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "currency.create", "currency", currency.Name, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"currency": currency})
}

// GetCurrencies handles the retrieval of all currencies
// @Summary     List currencies
// @Description Get all registered currencies
// @Tags        currencies
// @Produce     json
// @Success     200 {array} CurrencyResponse "List of currencies"
// @Router      /currency [get]
func (h *CurrencyHandler) GetCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.GetCurrencies()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}
