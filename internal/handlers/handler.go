package handlers

import (
	"climate_station/internal/logger"
	"climate_station/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options toggles optional behavior of the device API.
type Options struct {
	// AuthEnabled puts POST /settings behind a bearer token.
	AuthEnabled bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerDeviceRoutes(router)

	router.GET("/logs", h.getLogs)
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

// The dashboard consumes these paths as-is, so they stay unversioned.
func (h *Handler) registerDeviceRoutes(r *gin.Engine) {
	r.GET("/status", h.getStatus)
	r.GET("/summary", h.getSummary)
	r.GET("/settings", h.getSettings)
	// Body example: {"temp_high_threshold":30,"temp_low_threshold":10,"light_threshold":500}
	r.POST("/settings", h.settingsWriteGuard, h.postSettings)
}

