package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"consultly/handlers"
	"consultly/middleware"
	"consultly/utils"
)

// SetupRoutes wires the HTTP surface. Reads are open behind rate limiting;
// every mutation requires a verified identity.
func SetupRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	consultantHandler *handlers.ConsultantHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	consultants := api.Group("/consultants")
	{
		consultants.GET("/:id", consultantHandler.Get)
		consultants.GET("/:id/schedule", consultantHandler.WeeklySchedule)

		authed := consultants.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("", consultantHandler.Onboard)
			authed.PUT("/:id/windows", consultantHandler.ReplaceWindows)
			authed.DELETE("/:id", consultantHandler.Deactivate)
			authed.GET("/:id/bookings", bookingHandler.ListForConsultant)
		}
	}

	bookings := api.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", bookingHandler.Create)
		bookings.POST("/:id/confirm", bookingHandler.Confirm)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
		bookings.POST("/:id/complete", bookingHandler.Complete)
		bookings.GET("/:id", bookingHandler.Get)
	}

	requesters := api.Group("/requesters")
	requesters.Use(middleware.AuthMiddleware())
	{
		requesters.GET("/:id/bookings", bookingHandler.ListForRequester)
	}
}
