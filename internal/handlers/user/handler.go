package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/directiva-mx/admin-api/internal/domain/user"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	usersvc "github.com/directiva-mx/admin-api/internal/service/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	users  *usersvc.Service
	logger *zap.Logger
}

func NewHandler(users *usersvc.Service, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// List handles GET /users with an optional account_type query filter.
func (h *Handler) List(c *gin.Context) {
	var filters user.ListFilters
	if raw := c.Query("account_type"); raw != "" {
		t := user.AccountType(raw)
		filters.AccountType = &t
	}

	users, err := h.users.List(c.Request.Context(), &filters)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, "Tipo de cuenta inválido", err)
			return
		}
		h.logger.Error("user list failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"users": users, "count": len(users)})
}

// ListActive handles GET /users/active.
func (h *Handler) ListActive(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.users.ListRecentlyActive(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("active user list failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"users": users, "count": len(users)})
}

// UpdateAccountType handles PUT /users/:id/account-type.
func (h *Handler) UpdateAccountType(c *gin.Context) {
	var req user.UpdateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}

	updated, err := h.users.UpdateAccountType(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "Tipo de cuenta inválido", err)
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "Usuario no encontrado")
		default:
			h.logger.Error("account type update failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}
	response.Success(c, http.StatusOK, "Tipo de cuenta actualizado", updated)
}

// Delete handles DELETE /users/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Usuario no encontrado")
			return
		}
		h.logger.Error("user delete failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "Usuario eliminado", nil)
}
