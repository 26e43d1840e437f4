package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/causeshare-api/internal/config"
	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	// An authenticated caller has no business registering again
	if _, ok := CurrentUser(c); ok {
		c.JSON(http.StatusConflict, gin.H{"error": "already logged in"})
		return
	}

	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.User.Create(c.Request.Context(), &form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": service.ErrDuplicateEmail.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidRole.Error()})
		default:
			h.log.Error().Err(err).Msg("Failed to register user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": user.Email + " user has been added.",
		"user":    user,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := CurrentUser(c); ok {
		c.JSON(http.StatusOK, gin.H{"message": "already logged in", "next": "/"})
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong username or password!"})
			return
		}
		h.log.Error().Err(err).Msg("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	maxAge := int(h.cfg.Auth.SessionTTL.Seconds())
	c.SetCookie(h.cfg.Auth.CookieName, token, maxAge, "/", "", h.cfg.Auth.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully!",
		"user":    user,
		"next":    safeNext(c.Query("next")),
	})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.Auth.CookieName, "", -1, "/", "", h.cfg.Auth.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "You have successfully logged out."})
}

// Me handles GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		redirectToLogin(c)
		return
	}
	c.JSON(http.StatusOK, user)
}

// safeNext keeps post-login redirects on this site. Absolute URLs and
// protocol-relative tricks fall back to the index.
func safeNext(next string) string {
	if next == "" {
		return "/"
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Host != "" || parsed.Scheme != "" || strings.HasPrefix(next, "//") {
		return "/"
	}
	if !strings.HasPrefix(parsed.Path, "/") {
		return "/"
	}
	return next
}
