package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendlog/internal/services"
)

// UserHandler handles user listing, retrieval, and deletion
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// GetAllUsers handles the retrieval of all users
// @Summary     List users
// @Description Get all registered users (passwords are never included)
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} UserResponse "List of users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUserByID handles the retrieval of a single user
// @Summary     Get user by ID
// @Description Get a registered user by ID
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} UserResponse "User details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser handles user deletion
// @Summary     Delete user
// @Description Delete a user; refused while the user still owns records
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "User still owns records"
// @Router      /user/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	targetID := c.Param("id")
	if err := h.userService.DeleteUser(targetID); err != nil {
		respondWithError(c, err)
		return
	}

	if actorID, err := getUserID(c); err == nil {
		h.auditService.Log(actorID, "user.delete", "user", targetID, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
