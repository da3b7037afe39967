package miniapp

import (
	"errors"
	"net/http"

	"github.com/directiva-mx/admin-api/internal/domain/miniapp"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	miniappsvc "github.com/directiva-mx/admin-api/internal/service/miniapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	apps   *miniappsvc.Service
	logger *zap.Logger
}

func NewHandler(apps *miniappsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{apps: apps, logger: logger}
}

// List handles GET /mini-apps with an optional status query filter.
func (h *Handler) List(c *gin.Context) {
	var status *miniapp.Status
	if raw := c.Query("status"); raw != "" {
		s := miniapp.Status(raw)
		status = &s
	}

	apps, err := h.apps.List(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, "Estado inválido", err)
			return
		}
		h.logger.Error("mini app list failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"miniApps": apps, "count": len(apps)})
}

// UpdateStatus handles PUT /mini-apps/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req miniapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}

	if err := h.apps.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "Estado inválido", err)
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "Mini app no encontrada")
		default:
			h.logger.Error("mini app status update failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}
	response.Success(c, http.StatusOK, "Estado actualizado", nil)
}

// Delete handles DELETE /mini-apps/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.apps.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Mini app no encontrada")
			return
		}
		h.logger.Error("mini app delete failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "Mini app eliminada", nil)
}
