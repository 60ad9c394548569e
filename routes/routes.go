package routes

import (
	"net/http"
	"time"

	"fleetdesk/handlers"
	"fleetdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDriverRoutes registers driver account and self-service endpoints.
func RegisterDriverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drivers")
	{
		api.POST("/register", hb.RegisterDriverHandler)
		api.POST("/login", hb.LoginDriverHandler)

		// Protected routes (require driver authentication).
		api.Use(middleware.JWTAuthDriverMiddleware(hb.DriverRepo))
		api.GET("/me", hb.GetDriverProfileHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
		api.GET("/selections", hb.ListDriverSelectionsHandler)
	}
}

// RegisterSelectionRoutes registers the plan catalog and selection lifecycle.
func RegisterSelectionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/selections")
	{
		api.GET("/plans", hb.ListPlansHandler)

		api.Use(middleware.JWTAuthDriverMiddleware(hb.DriverRepo))
		api.POST("", hb.CreateSelectionHandler)
		api.GET("/:id", hb.GetSelectionHandler)
		api.GET("/:id/obligations", hb.GetObligationsHandler)
		api.POST("/:id/payments/confirm", hb.DriverConfirmPaymentHandler)
	}
}

// RegisterAdminRoutes registers back-office ledger operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.GET("/selections/:id", hb.GetSelectionHandler)
		adminGroup.GET("/selections/:id/obligations", hb.GetObligationsHandler)
		adminGroup.POST("/selections/:id/payments", hb.AdminRecordPaymentHandler)
		adminGroup.PUT("/selections/:id/status", hb.SetStatusHandler)
		adminGroup.PUT("/selections/:id/vehicle", hb.AssignVehicleHandler)
		adminGroup.DELETE("/selections/:id", hb.DeleteSelectionHandler)
	}
}

// RegisterWebhookRoutes registers payment gateway callback endpoints. These
// are authenticated by the gateway's own signing, not driver tokens.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	hooks := r.Group("/api/webhooks")
	{
		hooks.POST("/gateway/payment", hb.GatewayWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDriverRoutes(r, hb)
	RegisterSelectionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterHealthRoute(r)
}
