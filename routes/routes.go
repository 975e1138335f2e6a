package routes

import (
	"net/http"
	"time"

	"bookify/handlers"
	"bookify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the assembled handlers into route registration.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Services *handlers.ServicesHandler
	Admin    *handlers.AdminHandler
	Payment  *handlers.PaymentHandler
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Bookify"})
	})
}

// RegisterServiceRoutes sets up the public service catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking/services")
	{
		api.GET("", hb.Services.GetServices)
		api.GET("/:id", hb.Services.GetServiceByID)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.SessionAuthMiddleware())
		bookingGroup.POST("", hb.Booking.CreateBooking)
		bookingGroup.GET("", hb.Booking.ListBookings)
		bookingGroup.GET("/:id", hb.Booking.GetBooking)
		bookingGroup.POST("/:id/cancel", hb.Booking.CancelBooking)

		bookingGroup.POST("/checkout", hb.Payment.CreateCheckout)
		bookingGroup.GET("/payment/status/:id", hb.Payment.GetPaymentStatus)
	}
}

// RegisterWebhookRoutes sets up provider webhooks. No session middleware:
// authentication is the signature on the raw body.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/booking/stripe/webhook", hb.Payment.StripeWebhook)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/api/booking/admin")
	{
		adminGroup.Use(middleware.SessionAuthMiddleware(), middleware.AdminAuthMiddleware())
		adminGroup.POST("/services", hb.Admin.CreateService)
		adminGroup.PATCH("/services/:id", hb.Admin.UpdateService)
		adminGroup.DELETE("/services/:id", hb.Admin.DeleteService)
		adminGroup.POST("/refund", hb.Payment.RefundBooking)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterServiceRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
