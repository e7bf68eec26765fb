package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "tourbook/internal/config"
	h "tourbook/internal/http/handlers"
	"tourbook/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", middleware.RequireAuth(), h.Me)

		// Catalog (public reads, admin writes)
		packages := api.Group("/packages")
		packages.GET("", h.GetPackages)
		packages.GET("/:id", h.GetPackageByID)
		packages.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), h.CreatePackage)
		packages.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.UpdatePackage)
		packages.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.DeletePackage)

		offers := api.Group("/offers")
		offers.GET("", h.GetOffers)
		offers.GET("/:id", h.GetOfferByID)
		offers.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), h.CreateOffer)
		offers.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.UpdateOffer)
		offers.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.DeleteOffer)

		// Registries (admin)
		admin := api.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
		drivers := admin.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)

		vehicles := admin.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)

		guides := admin.Group("/guide-applications")
		guides.GET("", h.GetGuides)
		guides.POST("", h.CreateGuide)
		guides.PUT("/:id", h.UpdateGuide)
		guides.DELETE("/:id", h.DeleteGuide)

		// Bookings
		bookings := api.Group("/bookings", middleware.RequireAuth())
		bookings.POST("", h.CreateBooking)
		bookings.GET("", middleware.RequireAdmin(), h.GetBookings)
		bookings.GET("/all", middleware.RequireAdmin(), h.GetBookings)
		bookings.GET("/mine", h.GetMyBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PATCH("/:id", h.PatchBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
		bookings.PATCH("/:id/assignment", middleware.RequireAdmin(), h.PatchBookingAssignment)

		// Custom package requests: creation is public, management is admin.
		custom := api.Group("/custom-packages")
		custom.POST("", h.CreateCustomPackage)
		custom.GET("", middleware.RequireAuth(), middleware.RequireAdmin(), h.GetCustomPackages)
		custom.GET("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.GetCustomPackageByID)
		custom.PATCH("/:id/assignment", middleware.RequireAuth(), middleware.RequireAdmin(), h.PatchCustomPackageAssignment)
		custom.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.DeleteCustomPackage)

		admin.GET("/assignments/available", h.GetAvailableAssignments)

		finance := admin.Group("/finance")
		finance.GET("/summary", h.GetFinanceSummary)
		finance.GET("/expenses", h.GetFinanceExpenses)

		payroll := admin.Group("/payroll")
		payroll.GET("/salaries", h.GetSalaries)
		payroll.POST("/salaries", h.CreateSalary)
		payroll.PUT("/salaries/:id", h.UpdateSalary)
		payroll.DELETE("/salaries/:id", h.DeleteSalary)
		payroll.GET("/vehicle-salaries", h.GetVehicleSalaries)
		payroll.POST("/vehicle-salaries", h.CreateVehicleSalary)
		payroll.PUT("/vehicle-salaries/:id", h.UpdateVehicleSalary)
		payroll.DELETE("/vehicle-salaries/:id", h.DeleteVehicleSalary)
		payroll.GET("/employees", h.GetEmployees)
		payroll.POST("/employees/resolve", h.ResolveEmployee)
	}

	return r
}
