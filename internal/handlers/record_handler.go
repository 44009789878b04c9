package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/pagination"
	"spendlog/internal/services"
)

// RecordHandler handles expense-record requests
type RecordHandler struct {
	recordService services.RecordServicer
	auditService  services.AuditServicer
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService services.RecordServicer, auditService services.AuditServicer) *RecordHandler {
	return &RecordHandler{recordService: recordService, auditService: auditService}
}

// CreateRecordRequest represents the request payload for creating a record.
// Amount is a pointer so that a zero amount still satisfies the required tag.
type CreateRecordRequest struct {
	UserID     string   `json:"user_id" binding:"required,uuid_ref"`
	CategoryID string   `json:"category_id" binding:"required,uuid_ref"`
	Amount     *float64 `json:"amount" binding:"required"`
	CurrencyID *uint    `json:"currency_id"`
}

// ListRecordsQuery holds the optional filters and pagination for record listing
type ListRecordsQuery struct {
	UserID     *string `form:"user_id" binding:"omitempty,uuid_ref"`
	CategoryID *string `form:"category_id" binding:"omitempty,uuid_ref"`
	pagination.PageRequest
}

// RecordResponse represents a record in the response
type RecordResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	CategoryID string  `json:"category_id"`
	CurrencyID uint    `json:"currency_id"`
	Amount     float64 `json:"amount"`
	Timestamp  string  `json:"timestamp"`
}

// CreateRecord handles the creation of a new expense record
// @Summary     Create a record
// @Description Create an expense record; the currency falls back to the user's default when omitted
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecordRequest true "Record details"
// @Success     201 {object} RecordResponse "Record created"
// @Failure     400 {object} ErrorResponse "Invalid input or no resolvable currency"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User, category, or currency not found"
// @Router      /record [post]
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.recordService.CreateRecord(req.UserID, req.CategoryID, *req.Amount, req.CurrencyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actorID, "record.create", "record", record.ID, c.ClientIP(),
		map[string]interface{}{"amount": record.Amount, "currency_id": record.CurrencyID})

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// ListRecords handles record listing with optional filters
// @Summary     List records
// @Description List expense records matching all supplied filters; no filters returns everything
// @Tags        records
// @Produce     json
// @Security    BearerAuth
// @Param       user_id query string false "Filter by owning user"
// @Param       category_id query string false "Filter by category"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[RecordResponse] "Page of records"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /record [get]
func (h *RecordHandler) ListRecords(c *gin.Context) {
	var query ListRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.RecordFilter{
		UserID:     query.UserID,
		CategoryID: query.CategoryID,
	}

	result, err := h.recordService.ListRecords(filter, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecordByID handles the retrieval of a single record
// @Summary     Get record by ID
// @Description Get an expense record by ID
// @Tags        records
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} RecordResponse "Record details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /record/{id} [get]
func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	record, err := h.recordService.GetRecordByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// DeleteRecord handles record deletion
// @Summary     Delete record
// @Description Delete an expense record
// @Tags        records
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /record/{id} [delete]
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordID := c.Param("id")
	if err := h.recordService.DeleteRecord(recordID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actorID, "record.delete", "record", recordID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}
