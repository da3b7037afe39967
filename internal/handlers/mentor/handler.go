package mentor

import (
	"errors"
	"net/http"

	"github.com/directiva-mx/admin-api/internal/domain/mentor"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	mentorsvc "github.com/directiva-mx/admin-api/internal/service/mentor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	mentors *mentorsvc.Service
	logger  *zap.Logger
}

func NewHandler(mentors *mentorsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{mentors: mentors, logger: logger}
}

// List handles GET /mentors.
func (h *Handler) List(c *gin.Context) {
	mentors, err := h.mentors.List(c.Request.Context())
	if err != nil {
		h.logger.Error("mentor list failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"mentors": mentors, "count": len(mentors)})
}

// Delete handles DELETE /mentors/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.mentors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Mentor no encontrado")
			return
		}
		h.logger.Error("mentor delete failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "Mentor eliminado", nil)
}

// ListMeetingRequests handles GET /mentors/meeting-requests.
func (h *Handler) ListMeetingRequests(c *gin.Context) {
	requests, err := h.mentors.ListMeetingRequests(c.Request.Context())
	if err != nil {
		h.logger.Error("meeting request list failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"requests": requests, "count": len(requests)})
}

// UpdateMeetingRequestStatus handles PUT /mentors/meeting-requests/:id/status.
func (h *Handler) UpdateMeetingRequestStatus(c *gin.Context) {
	var req mentor.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}

	updated, err := h.mentors.UpdateMeetingRequestStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "Estado de solicitud inválido", err)
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "Solicitud no encontrada")
		default:
			h.logger.Error("meeting request update failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}
	response.Success(c, http.StatusOK, "Solicitud actualizada", updated)
}
