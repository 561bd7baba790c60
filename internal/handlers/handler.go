package handlers

import (
	"net/http"

	"monteuros/internal/logger"
	"monteuros/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Session endpoints (always reachable: the login screen uses them)
	h.registerAuthRoutes(router)

	// Pages behind the session gate
	h.registerPageRoutes(router)

	// Versioned API endpoints (session gated)
	h.registerAPIRoutes(router)

	// UI event stream on the same port
	router.GET("/ws", h.wsConnect)

	// Unknown paths go to the dashboard
	router.NoRoute(h.redirectToDashboard)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.GET("/session", h.getSession)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	pages := r.Group("/", h.sessionMiddleware)
	{
		pages.GET("/", h.getDashboard)
		pages.GET("/warmtepompscan", h.getScanForm)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		h.registerScanRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerScanRoutes(api *gin.RouterGroup) {
	scan := api.Group("/scan")
	{
		// Body example: {"heatpump_model":"F470","current_power_kw":"12.5"}
		scan.PATCH("", h.updateScanFields)
		scan.POST("/error-codes", h.toggleErrorCode)
		scan.POST("/submit", h.submitScan)
		scan.POST("/cancel", h.cancelScan)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusOK,
		"mock_mode": h.services.Session.Snapshot().MockMode,
	})
}

func (h *Handler) redirectToDashboard(c *gin.Context) {
	c.Redirect(http.StatusFound, service.DashboardPath)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
