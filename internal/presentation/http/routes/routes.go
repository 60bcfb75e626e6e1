package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quote-engine/internal/config"
	domainRepo "github.com/sangkips/quote-engine/internal/domain/repository"
	"github.com/sangkips/quote-engine/internal/presentation/http/dto/response"
	"github.com/sangkips/quote-engine/internal/presentation/http/handler"
	"github.com/sangkips/quote-engine/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Document *handler.DocumentHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Ping reports database health; nil skips the check
	Ping func(ctx context.Context) error
	// Done stops background sweepers when closed
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unavailable",
					"service": deps.Cfg.App.Name,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		deps.Done,
	)

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerDocumentRoutes(v1, h, deps)
		registerPricingRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerDocumentRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Create and add-item replay on a repeated Idempotency-Key
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	documents := v1.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.POST("", idempotent, h.Document.Create)
		documents.GET("/:id", h.Document.Get)
		documents.PATCH("/:id", h.Document.UpdateDetails)
		documents.DELETE("/:id", h.Document.Delete)
		documents.GET("/:id/totals", h.Document.Totals)
		documents.PUT("/:id/pricing", h.Document.UpdatePricing)
		documents.PUT("/:id/status", h.Document.ChangeStatus)
		documents.POST("/:id/items", idempotent, h.Document.AddLineItem)
		documents.PUT("/:id/items/:index", h.Document.UpdateLineItem)
		documents.DELETE("/:id/items/:index", h.Document.RemoveLineItem)
		documents.POST("/:id/items/:index/move", h.Document.MoveLineItem)
	}
}

func registerPricingRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.POST("/pricing/preview", h.Document.Preview)
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	if h.Printer == nil {
		return
	}
	v1.GET("/printer/status", h.Printer.GetStatus)
	v1.POST("/documents/:id/print", h.Printer.PrintDocument)
}
