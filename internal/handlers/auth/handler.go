// HTTP surface of the auth gate. Login and verify keep the exact body shapes
// the panel frontend expects: {success, token, user} rather than the generic
// data envelope.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/directiva-mx/admin-api/internal/domain/admin"
	"github.com/directiva-mx/admin-api/internal/middleware"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	authsvc "github.com/directiva-mx/admin-api/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	auth   *authsvc.Service
	logger *zap.Logger
}

func NewHandler(auth *authsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    admin.AdminUser `json:"user"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Usuario y contraseña son requeridos", nil)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Usuario y contraseña son requeridos", nil)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Credenciales inválidas", nil)
		case errors.Is(err, xerrors.ErrAuthNotConfigured):
			response.Error(c, http.StatusInternalServerError, "Función de autenticación no configurada. Contacta al administrador.", nil)
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Usuario y contraseña son requeridos", nil)
		default:
			h.logger.Error("login failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Token:   result.Token,
		User:    result.User,
	})
}

// Verify handles GET /auth/verify. The route sits behind AuthMiddleware, so
// by the time it runs the principal has already been re-checked; it only
// echoes it back.
func (h *Handler) Verify(c *gin.Context) {
	principal, ok := middleware.GetAdmin(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Token inválido o expirado", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    principal,
	})
}
