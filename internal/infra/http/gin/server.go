package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayfinder/internal/infra/config"
	"stayfinder/internal/infra/obs"
)

type Handlers struct {
	Auth    AuthHTTP
	Listing ListingHTTP
	Booking BookingHTTP
	Admin   AdminHTTP

	RequireAuth gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := NewRouter(obsMW, health, h)
	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

// NewRouter builds the route tree; split from NewServer so tests can drive it
// through httptest.
func NewRouter(obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api")
	if h.Auth != nil {
		api.POST("/users/signup", h.Auth.Signup)
		api.POST("/users/login", h.Auth.Login)
	}
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
		api.GET("/listings/search", h.Listing.Search)
		api.GET("/listings/:id", h.Listing.Get)
		api.GET("/listings/:id/quote", h.Listing.Quote)
		api.POST("/listings", h.Listing.Create)
	}
	if h.Booking != nil && h.RequireAuth != nil {
		bookings := api.Group("/bookings", h.RequireAuth)
		bookings.POST("", h.Booking.Create)
		bookings.GET("/user", h.Booking.ListMine)
		bookings.DELETE("/:id", h.Booking.Cancel)
	}
	if h.Admin != nil && h.RequireAuth != nil {
		admin := api.Group("/admin", h.RequireAuth, RequireAdmin())
		admin.GET("/users", h.Admin.ListUsers)
		if h.Listing != nil {
			admin.POST("/listings", h.Listing.Create)
		}
		admin.POST("/listings/:id/photo", h.Admin.UploadListingPhoto)
	}

	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
