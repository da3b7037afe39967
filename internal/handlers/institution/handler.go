package institution

import (
	"errors"
	"net/http"

	"github.com/directiva-mx/admin-api/internal/domain/institution"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	instsvc "github.com/directiva-mx/admin-api/internal/service/institution"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	institutions *instsvc.Service
	logger       *zap.Logger
}

func NewHandler(institutions *instsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{institutions: institutions, logger: logger}
}

// List handles GET /institutions.
func (h *Handler) List(c *gin.Context) {
	institutions, err := h.institutions.List(c.Request.Context())
	if err != nil {
		h.logger.Error("institution list failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"institutions": institutions, "count": len(institutions)})
}

// Update handles PUT /institutions/:id.
func (h *Handler) Update(c *gin.Context) {
	var req institution.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}

	updated, err := h.institutions.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "Estado de institución inválido", err)
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "Institución no encontrada")
		default:
			h.logger.Error("institution update failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}
	response.Success(c, http.StatusOK, "Institución actualizada", updated)
}

// Delete handles DELETE /institutions/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.institutions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Institución no encontrada")
			return
		}
		h.logger.Error("institution delete failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "Institución eliminada", nil)
}
