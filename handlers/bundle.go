package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalogue endpoints
	ListServicesHandler  gin.HandlerFunc
	GetServiceHandler    gin.HandlerFunc
	CreateServiceHandler gin.HandlerFunc
	UpdateServiceHandler gin.HandlerFunc
	DeleteServiceHandler gin.HandlerFunc

	// Booking endpoints
	ListBookingsHandler  gin.HandlerFunc
	CreateBookingHandler gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc
	DeleteBookingHandler gin.HandlerFunc

	// Review endpoints
	ListReviewsHandler  gin.HandlerFunc
	CreateReviewHandler gin.HandlerFunc
	DeleteReviewHandler gin.HandlerFunc

	// Report endpoints
	ListReportsHandler  gin.HandlerFunc
	CreateReportHandler gin.HandlerFunc
	GetReportHandler    gin.HandlerFunc
	UpdateReportHandler gin.HandlerFunc
	DeleteReportHandler gin.HandlerFunc

	// Provider directory
	ListProvidersHandler gin.HandlerFunc
	GetProviderHandler   gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler gin.HandlerFunc
	MarkNotificationHandler  gin.HandlerFunc

	// User endpoints
	GetMeHandler          gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc

	// Admin endpoints
	AdminStatsHandler      gin.HandlerFunc
	AdminBookingsHandler   gin.HandlerFunc
	GetAllUsersHandler     gin.HandlerFunc
	GetAllProvidersHandler gin.HandlerFunc
	UpdateUserHandler      gin.HandlerFunc
	DeleteUserHandler      gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
