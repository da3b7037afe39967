package notification

import (
	"errors"
	"net/http"

	"github.com/directiva-mx/admin-api/internal/domain/notification"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	"github.com/directiva-mx/admin-api/internal/service/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

func NewHandler(dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, logger: logger}
}

// Send handles POST /notifications/send. The success body is
// {success, counts, email?}; email is absent entirely when the channel was
// not requested. A failed email after committed inserts is still a 200.
func (h *Handler) Send(c *gin.Context) {
	var req notification.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}

	outcome, err := h.dispatcher.Dispatch(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNoRecipients):
			response.Error(c, http.StatusBadRequest, "No se encontraron destinatarios", nil)
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Título y mensaje son requeridos", err)
		default:
			h.logger.Error("notification dispatch failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}

	body := gin.H{
		"success": true,
		"counts":  outcome.Counts,
	}
	if outcome.Email != nil {
		body["email"] = outcome.Email
	}
	c.JSON(http.StatusOK, body)
}
