package api

import (
	"net/http"
	"slices"

	analyticsDelivery "watches-backend/internal/analytics/delivery"
	analyticsUsecase "watches-backend/internal/analytics/usecase"
	authUsecase "watches-backend/internal/auth/usecase"
	catalogDelivery "watches-backend/internal/catalog/delivery"
	catalogUsecase "watches-backend/internal/catalog/usecase"
	orderDelivery "watches-backend/internal/order/delivery"
	orderUsecase "watches-backend/internal/order/usecase"
	"watches-backend/pkg/config"
	"watches-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	orderHandler     *orderDelivery.OrderHandler
	catalogHandler   *catalogDelivery.CatalogHandler
	analyticsHandler *analyticsDelivery.AnalyticsHandler
	metrics          *metrics.Metrics
	config           *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, orderUc orderUsecase.OrderUsecase, catalogUc catalogUsecase.CatalogUsecase, analyticsUc analyticsUsecase.AnalyticsUsecase, m *metrics.Metrics, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:      authUc,
		orderHandler:     orderDelivery.NewOrderHandler(orderUc),
		catalogHandler:   catalogDelivery.NewCatalogHandler(catalogUc),
		analyticsHandler: analyticsDelivery.NewAnalyticsHandler(analyticsUc),
		metrics:          m,
		config:           cfg,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
	}
	r.Use(corsMiddleware(h.config.AllowedOrigins))

	SetupRoutes(r, h)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Engine().Run(addr)
}

// corsMiddleware reflects allowed origins only, since requests carry the
// session cookie.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && slices.Contains(allowed, origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
