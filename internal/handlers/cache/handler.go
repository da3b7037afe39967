package cache

import (
	"errors"
	"net/http"
	"regexp"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"
	cachesvc "github.com/directiva-mx/admin-api/internal/service/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	cache  *cachesvc.Service
	logger *zap.Logger
}

func NewHandler(cache *cachesvc.Service, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, logger: logger}
}

// ClearUser handles POST /cache/clear-user. Input is validated here so bad
// requests never cross the service boundary; connectivity failures map to
// gateway statuses so the panel can tell "main app down" from "panel broken".
func (h *Handler) ClearUser(c *gin.Context) {
	var req cachesvc.ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Cuerpo de la solicitud inválido", err)
		return
	}

	if req.UserID == "" && req.UserEmail == "" && !req.ClearAll {
		response.ValidationError(c, "Se requiere userId, userEmail o clearAll", nil)
		return
	}
	if req.UserID != "" {
		if _, err := uuid.Parse(req.UserID); err != nil {
			response.ValidationError(c, "userId no tiene formato UUID válido", nil)
			return
		}
	}
	if req.UserEmail != "" && !emailShape.MatchString(req.UserEmail) {
		response.ValidationError(c, "userEmail no es un email válido", nil)
		return
	}

	result, err := h.cache.ClearUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrUpstreamTimeout):
			response.Error(c, http.StatusGatewayTimeout, "La aplicación principal no respondió a tiempo", err)
		case errors.Is(err, xerrors.ErrUpstreamUnavailable):
			response.Error(c, http.StatusBadGateway, "La aplicación principal no está disponible", err)
		case errors.Is(err, xerrors.ErrUpstreamNetwork):
			response.Error(c, http.StatusServiceUnavailable, "Error de red con la aplicación principal", err)
		default:
			h.logger.Error("cache clear failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		}
		return
	}

	if result.StatusCode < 200 || result.StatusCode >= 300 {
		// A 4xx from the upstream is the upstream rejecting the request;
		// pass it through. Anything else is a 500 from the panel's view.
		status := http.StatusInternalServerError
		if result.StatusCode >= 400 && result.StatusCode < 500 {
			status = result.StatusCode
		}
		response.Error(c, status, "La aplicación principal rechazó la solicitud", nil)
		return
	}

	if result.RequestID != "" {
		c.Writer.Header().Set("X-Upstream-Request-ID", result.RequestID)
	}
	if result.ElapsedTime != "" {
		c.Writer.Header().Set("X-Upstream-Response-Time", result.ElapsedTime)
	}
	response.Success(c, http.StatusOK, "Caché limpiado exitosamente", result.Body)
}
