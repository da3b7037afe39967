package stats

import (
	"net/http"

	"github.com/directiva-mx/admin-api/internal/pkg/response"
	statssvc "github.com/directiva-mx/admin-api/internal/service/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	stats  *statssvc.Service
	logger *zap.Logger
}

func NewHandler(stats *statssvc.Service, logger *zap.Logger) *Handler {
	return &Handler{stats: stats, logger: logger}
}

// Dashboard handles GET /stats/dashboard. ?refresh=true drops the cached
// snapshot before computing, so the caller always sees fresh counts.
func (h *Handler) Dashboard(c *gin.Context) {
	if c.Query("refresh") == "true" {
		h.stats.Invalidate(c.Request.Context())
	}
	d, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
		return
	}
	response.Success(c, http.StatusOK, "", d)
}
