package api

import (
	"errors"
	"net/http"

	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles account and admin user-management endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// ListUsers handles GET /admin/users. Returns all users and the role
// reference rows for display.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, roles, err := h.services.User.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"roles": roles,
	})
}

// AddUser handles POST /admin/users. Same duplicate-email rule as
// self-registration.
func (h *UserHandler) AddUser(c *gin.Context) {
	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.User.Create(c.Request.Context(), &form)
	if err != nil {
		h.writeUserError(c, err, "Failed to add user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": user.Email + " user has been added.",
		"user":    user,
	})
}

// GetUser handles GET /admin/users/:id and GET /my-account/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	if !h.mayTouchAccount(c) {
		return
	}

	user, err := h.services.User.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /admin/users/:id and PUT /my-account/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	if !h.mayTouchAccount(c) {
		return
	}

	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A non-admin cannot promote themselves through the account form
	if caller, ok := CurrentUser(c); ok && caller.Role != models.RoleAdmin && form.Role != caller.Role {
		c.JSON(http.StatusForbidden, gin.H{"error": "you may not change your own role"})
		return
	}

	user, err := h.services.User.Update(c.Request.Context(), c.Param("id"), &form)
	if err != nil {
		h.writeUserError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": user.Email + " has been modified.",
		"user":    user,
	})
}

// DeleteUser handles DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.services.User.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": user.Email + " has been deleted."})
}

// mayTouchAccount enforces the ownership rule on the account routes:
// a non-admin caller may only read or edit the account matching their
// own id. Admin routes pass through because RequireRoles already
// limited them to admins.
func (h *UserHandler) mayTouchAccount(c *gin.Context) bool {
	caller, ok := CurrentUser(c)
	if !ok {
		redirectToLogin(c)
		return false
	}
	if caller.Role != models.RoleAdmin && caller.ID != c.Param("id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "you may only manage your own account"})
		c.Abort()
		return false
	}
	return true
}

func (h *UserHandler) writeUserError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrDuplicateEmail.Error()})
	case errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidRole.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
