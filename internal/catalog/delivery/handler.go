package delivery

import (
	"errors"
	"net/http"

	catalogdto "watches-backend/internal/catalog/dto"
	"watches-backend/internal/catalog/usecase"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

// GET /api/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogUsecase.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/delivery-services
func (h *CatalogHandler) GetDeliveryServices(c *gin.Context) {
	services, err := h.catalogUsecase.ListDeliveryServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// PUT /api/products/:id/delivery
func (h *CatalogHandler) AssignDelivery(c *gin.Context) {
	var req struct {
		ServiceID string `json:"service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalogUsecase.AssignDelivery(c.Request.Context(), c.Param("id"), req.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id/delivery
func (h *CatalogHandler) RemoveDelivery(c *gin.Context) {
	product, err := h.catalogUsecase.RemoveDelivery(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogdto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.catalogUsecase.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// POST /api/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.catalogUsecase.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// POST /api/delivery-services
func (h *CatalogHandler) CreateDeliveryService(c *gin.Context) {
	var req catalogdto.CreateDeliveryServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	service, err := h.catalogUsecase.CreateDeliveryService(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound), errors.Is(err, usecase.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrServiceUnavailable), errors.Is(err, usecase.ErrCategoryExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[Catalog] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
