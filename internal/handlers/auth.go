package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"marketgate/api/internal/models"
	"marketgate/api/internal/respond"
	"marketgate/api/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionPayload struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginConsumer handles POST /auth/login.
func (h HandlerSet) LoginConsumer(c *gin.Context) {
	h.login(c, models.CategoryConsumer, respond.CodeConsumerLoginSuccess, "Consumer login successful")
}

// LoginRetailer handles POST /auth/retailer/login.
func (h HandlerSet) LoginRetailer(c *gin.Context) {
	h.login(c, models.CategoryRetailer, respond.CodeRetailerLoginSuccess, "Retailer login successful")
}

// LoginAdmin handles POST /auth/admin/login.
func (h HandlerSet) LoginAdmin(c *gin.Context) {
	h.login(c, models.CategoryAdmin, respond.CodeAdminLoginSuccess, "Admin login successful")
}

func (h HandlerSet) login(c *gin.Context, category models.Category, successCode string, successMessage string) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			respond.Error(c, http.StatusBadRequest, "No data received", respond.CodeNoData)
			return
		}
		respond.Error(c, http.StatusBadRequest, "Invalid JSON format", respond.CodeInvalidJSON)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), category, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.loginError(c, err)
		return
	}

	respond.Success(c, http.StatusOK, successMessage, successCode, gin.H{
		"user": result.User,
		"session": sessionPayload{
			SessionID: result.Session.Token,
			ExpiresAt: result.Session.ExpiresAt,
		},
	})
}

func (h HandlerSet) loginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		respond.Error(c, http.StatusBadRequest, "Username and password are required", respond.CodeMissingCredentials)
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "Invalid username or password", respond.CodeInvalidCredentials)
	case errors.Is(err, service.ErrSessionCreation):
		respond.Error(c, http.StatusInternalServerError, "Failed to create session", respond.CodeSessionCreationFailed)
	case errors.Is(err, service.ErrStoreUnavailable):
		respond.Error(c, http.StatusInternalServerError, "Database connection failed", respond.CodeDBConnectionError)
	default:
		h.log.Error().Err(err).Msg("login failed")
		respond.Error(c, http.StatusInternalServerError, "Internal server error", respond.CodeServerError)
	}
}

// Logout handles POST /auth/logout. Revocation is idempotent: a token
// that no longer exists still yields a success response.
func (h HandlerSet) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respond.Error(c, http.StatusUnauthorized, "Session token required", respond.CodeInvalidSession)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			respond.Error(c, http.StatusInternalServerError, "Database connection failed", respond.CodeDBConnectionError)
			return
		}
		h.log.Error().Err(err).Msg("logout failed")
		respond.Error(c, http.StatusInternalServerError, "Internal server error", respond.CodeServerError)
		return
	}

	respond.Success(c, http.StatusOK, "Session cleared successfully", respond.CodeLogoutSuccess, nil)
}

// Me handles GET /auth/me behind the session middleware.
func (h HandlerSet) Me(c *gin.Context) {
	identityVal, exists := c.Get("identity")
	if !exists {
		respond.Error(c, http.StatusUnauthorized, "Session not found or expired", respond.CodeInvalidSession)
		return
	}

	identity, ok := identityVal.(models.Identity)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "Session not found or expired", respond.CodeInvalidSession)
		return
	}

	respond.Success(c, http.StatusOK, "Session is valid", respond.CodeSessionValid, gin.H{
		"user": identity,
	})
}
