// Package server assembles the HTTP router from the feature modules.
package server

import (
	"net/http"
	"time"

	"carrental/internal/config"
	"carrental/internal/middleware"
	"carrental/internal/modules/admin"
	"carrental/internal/modules/auth"
	"carrental/internal/modules/booking"
	"carrental/internal/modules/catalog"
	"carrental/internal/modules/customer"
	"carrental/internal/modules/payment"
	"carrental/internal/modules/rental"
	"carrental/internal/modules/report"
	"carrental/internal/pkg/jwt"
	"carrental/internal/pkg/response"
	"carrental/internal/repository"

	"github.com/gin-gonic/gin"
)

type Options struct {
	Config *config.Config
	Store  *repository.Store
	Tokens *jwt.Service
	// Now overrides the clock used for "today" checks. Nil means time.Now.
	Now func() time.Time
}

// NewRouter wires every module under /api/v1 with its access level.
func NewRouter(opts Options) *gin.Engine {
	cfg, st, tokens := opts.Config, opts.Store, opts.Tokens

	bookingService := booking.NewService(st, cfg.DefaultStaffID)
	paymentService := payment.NewService(st)
	reportService := report.NewService(st.Payments, st.Rentals, st.Vehicles, st.Customers, st.Users)
	if opts.Now != nil {
		bookingService.SetClock(opts.Now)
		paymentService.SetClock(opts.Now)
		reportService.SetClock(opts.Now)
	}

	authHandler := auth.NewHandler(auth.NewService(st.Users, tokens, tokens.TTL()))
	adminHandler := admin.NewHandler(admin.NewService(st.Users))
	catalogHandler := catalog.NewHandler(catalog.NewService(st))
	bookingHandler := booking.NewHandler(bookingService)
	rentalHandler := rental.NewHandler(rental.NewService(st))
	paymentHandler := payment.NewHandler(paymentService)
	customerHandler := customer.NewHandler(customer.NewService(st.Customers, st.Rentals))
	reportHandler := report.NewHandler(reportService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		identified := v1.Group("", middleware.OptionalAuth(tokens, st.Users))
		bookingHandler.RegisterRoutes(identified)
		paymentHandler.RegisterPublicRoutes(identified)

		protected := v1.Group("", middleware.JWTAuth(tokens, st.Users))
		authHandler.RegisterProtectedRoutes(protected)

		staff := protected.Group("", middleware.StaffOrAdmin())
		{
			rentalHandler.RegisterRoutes(staff)
			customerHandler.RegisterRoutes(staff)
			paymentHandler.RegisterRoutes(staff)
			reportHandler.RegisterRoutes(staff)
		}

		adminOnly := protected.Group("", middleware.AdminOnly())
		{
			paymentHandler.RegisterAdminRoutes(adminOnly)
			reportHandler.RegisterAdminRoutes(adminOnly)
		}

		adminGroup := protected.Group("/admin", middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
			rentalHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	return r
}
