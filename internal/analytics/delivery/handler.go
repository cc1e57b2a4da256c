package delivery

import (
	"net/http"

	"watches-backend/internal/analytics/usecase"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// GET /api/analytics/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsUsecase.Summary(c.Request.Context())
	if err != nil {
		log.Printf("[Analytics] Summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analytics data"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/analytics/sales?timeframe=30days
func (h *AnalyticsHandler) GetSales(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", usecase.DefaultTimeframe)
	points, err := h.analyticsUsecase.SalesSeries(c.Request.Context(), timeframe)
	if err != nil {
		log.Printf("[Analytics] Sales series failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sales data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeframe": timeframe, "sales": points})
}
