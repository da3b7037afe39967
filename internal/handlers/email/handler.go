package email

import (
	"fmt"
	"net/http"

	"github.com/directiva-mx/admin-api/internal/pkg/response"
	emailsvc "github.com/directiva-mx/admin-api/internal/service/email"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	emails *emailsvc.Service
	logger *zap.Logger
}

func NewHandler(emails *emailsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{emails: emails, logger: logger}
}

// Send handles POST /email/send for direct one-off sends from the panel.
func (h *Handler) Send(c *gin.Context) {
	var msg emailsvc.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}
	if len(msg.To) == 0 || msg.Subject == "" || (msg.HTML == "" && msg.Text == "") {
		response.ValidationError(c, "Destinatario, asunto y contenido son requeridos", nil)
		return
	}

	result, err := h.emails.Send(c.Request.Context(), &msg)
	if err != nil {
		h.logger.Error("direct email send failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "No se pudo enviar el email", err)
		return
	}

	message := fmt.Sprintf("Email enviado exitosamente a %d destinatario(s)", len(msg.To))
	response.Success(c, http.StatusOK, message, result)
}

// Config handles GET /email/config. An invalid or missing key is reported in
// the body, never as a 500.
func (h *Handler) Config(c *gin.Context) {
	status := h.emails.Config(c.Request.Context())
	c.JSON(http.StatusOK, status)
}
