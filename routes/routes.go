package routes

import (
	"gorent/internal/handlers"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the handler set wired in main.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Catalog      *handlers.CatalogHandler
	Booking      *handlers.BookingHandler
	Driver       *handlers.DriverHandler
	Admin        *handlers.AdminHandler
	Notification *handlers.NotificationHandler
}

// Setup registers the full API surface under /api/v1.
func Setup(r *gin.RouterGroup, h *Handlers, jwtSecret string, authService services.AuthService) {
	authenticate := middleware.Authenticate(jwtSecret, authService)

	SetupAuthRoutes(r, h.Auth, authenticate)
	SetupCatalogRoutes(r, h.Catalog)
	SetupBookingRoutes(r, h.Booking, authenticate)
	SetupDriverRoutes(r, h.Driver, authenticate)
	SetupAdminRoutes(r, h.Admin, authenticate)
	SetupNotificationRoutes(r, h.Notification, authenticate)
}

// SetupAuthRoutes sets up authentication and profile routes
func SetupAuthRoutes(r *gin.RouterGroup, h *handlers.AuthHandler, authenticate gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/social", h.SocialLogin)
		auth.POST("/refresh", h.RefreshToken)
	}

	me := r.Group("/auth")
	me.Use(authenticate, middleware.RequireAuth())
	{
		me.POST("/logout", h.Logout)
		me.GET("/me", h.Me)
		me.PUT("/me", h.UpdateProfile)
	}
}

// SetupCatalogRoutes sets up the public vehicle catalog and quote routes
func SetupCatalogRoutes(r *gin.RouterGroup, h *handlers.CatalogHandler) {
	catalog := r.Group("/vehicles")
	{
		catalog.GET("", h.ListVehicles)
		catalog.GET("/:id", h.GetVehicle)
	}

	r.GET("/drivers/available", h.GetAvailableDrivers)
	r.POST("/quote", h.Quote)
}

// SetupBookingRoutes sets up customer booking lifecycle routes
func SetupBookingRoutes(r *gin.RouterGroup, h *handlers.BookingHandler, authenticate gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(authenticate, middleware.RequireRoles(models.RoleCustomer, models.RoleAdmin))
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/payments", h.GetBookingPayments)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/pay", h.PayOnline)
		bookings.PUT("/:id/payment-method/cash", h.SelectCash)
		bookings.POST("/:id/review", h.AddReview)
	}
}

// SetupDriverRoutes sets up the driver dashboard routes
func SetupDriverRoutes(r *gin.RouterGroup, h *handlers.DriverHandler, authenticate gin.HandlerFunc) {
	driver := r.Group("/driver")
	driver.Use(authenticate, middleware.RequireRoles(models.RoleDriver, models.RoleAdmin))
	{
		driver.GET("/rides", h.GetMyRides)
		driver.PUT("/rides/:id/complete", h.CompleteRide)
		driver.PUT("/rides/:id/collect-cash", h.CollectCash)
		driver.POST("/rides/:id/review", h.AddReview)
		driver.PUT("/availability", h.SetAvailability)
	}
}

// SetupAdminRoutes sets up the admin panel routes
func SetupAdminRoutes(r *gin.RouterGroup, h *handlers.AdminHandler, authenticate gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(authenticate, middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.GetDashboard)

		admin.GET("/vehicles", h.ListVehicles)
		admin.POST("/vehicles", h.CreateVehicle)
		admin.PUT("/vehicles/:id", h.UpdateVehicle)
		admin.DELETE("/vehicles/:id", h.DeleteVehicle)
		admin.POST("/vehicles/:id/image", h.UploadVehicleImage)

		admin.GET("/users", h.ListUsers)
		admin.POST("/drivers", h.CreateDriver)
		admin.PUT("/users/:id/status", h.SetUserStatus)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/bookings", h.ListBookings)
		admin.PUT("/bookings/:id/status", h.UpdateBookingStatus)
		admin.PUT("/bookings/:id/payment-status", h.UpdateBookingPaymentStatus)

		admin.GET("/payments", h.ListPayments)
	}
}

// SetupNotificationRoutes sets up the notification feed routes
func SetupNotificationRoutes(r *gin.RouterGroup, h *handlers.NotificationHandler, authenticate gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(authenticate, middleware.RequireAuth())
	{
		notifications.GET("", h.GetMyNotifications)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}
