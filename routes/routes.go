package routes

import (
	"time"

	"karigar/handlers"
	"karigar/middleware"
	"karigar/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterServiceRoutes registers the service catalogue.
func RegisterServiceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	services := api.Group("/services")
	{
		services.GET("", hb.ListServicesHandler)
		services.GET("/:id", hb.GetServiceHandler)

		protected := services.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", middleware.RequireRoles(models.RoleProvider), hb.CreateServiceHandler)
		protected.PUT("/:id", middleware.RequireRoles(models.RoleProvider, models.RoleAdmin), hb.UpdateServiceHandler)
		protected.DELETE("/:id", middleware.RequireRoles(models.RoleProvider, models.RoleAdmin), hb.DeleteServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware())
		bookings.GET("", hb.ListBookingsHandler)
		bookings.POST("", hb.CreateBookingHandler)
		bookings.GET("/:id", hb.GetBookingHandler)
		bookings.PUT("/:id", hb.UpdateBookingHandler)
		bookings.DELETE("/:id", hb.DeleteBookingHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("", hb.ListReviewsHandler)

		protected := reviews.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.CreateReviewHandler)
		protected.DELETE("/:id", hb.DeleteReviewHandler)
	}
}

// RegisterReportRoutes registers moderation reports. Status changes and
// deletion are admin only.
func RegisterReportRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reports := api.Group("/reports")
	{
		reports.Use(middleware.JWTAuthMiddleware())
		reports.GET("", hb.ListReportsHandler)
		reports.POST("", hb.CreateReportHandler)
		reports.GET("/:id", hb.GetReportHandler)
		reports.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), hb.UpdateReportHandler)
		reports.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), hb.DeleteReportHandler)
	}
}

// RegisterProviderRoutes registers the public provider directory.
func RegisterProviderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	providers := api.Group("/providers")
	{
		providers.GET("", hb.ListProvidersHandler)
		providers.GET("/:id", hb.GetProviderHandler)
	}
}

// RegisterNotificationRoutes registers the caller's inbox.
func RegisterNotificationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	notifications := api.Group("/notifications")
	{
		notifications.Use(middleware.JWTAuthMiddleware())
		notifications.GET("", hb.ListNotificationsHandler)
		notifications.PATCH("/:id/read", hb.MarkNotificationHandler)
	}
}

// RegisterUserRoutes registers the caller's account endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	users := api.Group("/users")
	{
		users.Use(middleware.JWTAuthMiddleware())
		users.GET("/me", hb.GetMeHandler)
		users.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
		adminGroup.GET("/stats", hb.AdminStatsHandler)
		adminGroup.GET("/bookings", hb.AdminBookingsHandler)
		adminGroup.GET("/users", hb.GetAllUsersHandler)
		adminGroup.PUT("/users/:id", hb.UpdateUserHandler)
		adminGroup.DELETE("/users/:id", hb.DeleteUserHandler)
		adminGroup.GET("/providers", hb.GetAllProvidersHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", hb.HealthHandler)

	api := r.Group("/api")
	RegisterServiceRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterReviewRoutes(api, hb)
	RegisterReportRoutes(api, hb)
	RegisterProviderRoutes(api, hb)
	RegisterNotificationRoutes(api, hb)
	RegisterUserRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
