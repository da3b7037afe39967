// internal/app/router.go
package app

import (
	authHandler "github.com/directiva-mx/admin-api/internal/handlers/auth"
	cacheHandler "github.com/directiva-mx/admin-api/internal/handlers/cache"
	emailHandler "github.com/directiva-mx/admin-api/internal/handlers/email"
	institutionHandler "github.com/directiva-mx/admin-api/internal/handlers/institution"
	mentorHandler "github.com/directiva-mx/admin-api/internal/handlers/mentor"
	miniappHandler "github.com/directiva-mx/admin-api/internal/handlers/miniapp"
	notifyHandler "github.com/directiva-mx/admin-api/internal/handlers/notification"
	statsHandler "github.com/directiva-mx/admin-api/internal/handlers/stats"
	userHandler "github.com/directiva-mx/admin-api/internal/handlers/user"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *authHandler.Handler
	Notification *notifyHandler.Handler
	Email        *emailHandler.Handler
	Cache        *cacheHandler.Handler
	User         *userHandler.Handler
	Mentor       *mentorHandler.Handler
	Institution  *institutionHandler.Handler
	MiniApp      *miniappHandler.Handler
	Stats        *statsHandler.Handler
	RequireAdmin gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Public Auth Routes ====================
	api.POST("/auth/login", h.Auth.Login)

	// ==================== Email (caller-context trust) ====================
	email := api.Group("/email")
	{
		email.POST("/send", h.Email.Send)
		email.GET("/config", h.Email.Config)
	}

	// ==================== Notifications ====================
	api.POST("/notifications/send", h.Notification.Send)

	// ==================== Protected Routes ====================
	protected := api.Group("")
	protected.Use(h.RequireAdmin)
	{
		protected.GET("/auth/verify", h.Auth.Verify)
		protected.POST("/cache/clear-user", h.Cache.ClearUser)

		users := protected.Group("/users")
		{
			users.GET("", h.User.List)
			users.GET("/active", h.User.ListActive)
			users.PUT("/:id/account-type", h.User.UpdateAccountType)
			users.DELETE("/:id", h.User.Delete)
		}

		mentors := protected.Group("/mentors")
		{
			mentors.GET("", h.Mentor.List)
			mentors.DELETE("/:id", h.Mentor.Delete)
			mentors.GET("/meeting-requests", h.Mentor.ListMeetingRequests)
			mentors.PUT("/meeting-requests/:id/status", h.Mentor.UpdateMeetingRequestStatus)
		}

		institutions := protected.Group("/institutions")
		{
			institutions.GET("", h.Institution.List)
			institutions.PUT("/:id", h.Institution.Update)
			institutions.DELETE("/:id", h.Institution.Delete)
		}

		miniApps := protected.Group("/mini-apps")
		{
			miniApps.GET("", h.MiniApp.List)
			miniApps.PUT("/:id/status", h.MiniApp.UpdateStatus)
			miniApps.DELETE("/:id", h.MiniApp.Delete)
		}

		protected.GET("/stats/dashboard", h.Stats.Dashboard)
	}
}
