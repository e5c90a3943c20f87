package transport

import (
	"net/http"
	"time"

	"ethnikart/internal/middleware"
	"ethnikart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminLoginRequest carries the shared admin credential. It is verified
// server-side only.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse returns the session token and its expiry.
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminHandler handles admin authentication.
type AdminHandler struct {
	admin  service.AdminService
	logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// RegisterRoutes registers the admin login route.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/admin/login", h.Login)
}

// Login verifies the admin password and issues a session token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Admin login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, err := h.admin.Login(req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidPassword:
			h.logger.Warn("Admin login rejected", zap.String("remote_addr", r.RemoteAddr))
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid password")
		case service.ErrAdminDisabled:
			middleware.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		default:
			h.logger.Error("Admin login failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	h.logger.Info("Admin logged in")
	middleware.RespondWithJSON(w, http.StatusOK, AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
