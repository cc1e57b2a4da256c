package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdelivery "watches-backend/internal/auth/delivery"
	orderdto "watches-backend/internal/order/dto"
	"watches-backend/internal/order/usecase"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
	}
}

// GET /api/orders?status=pending&limit=50&offset=0
func (h *OrderHandler) GetOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.orderUsecase.ListOrders(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderdto.OrderListResponse{Orders: orders, Total: total})
}

// GET /api/orders/board
func (h *OrderHandler) GetBoard(c *gin.Context) {
	orders, err := h.orderUsecase.BoardFeed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderdto.BoardResponse{Orders: orders})
}

// GET /api/orders/recent
func (h *OrderHandler) GetRecentOrders(c *gin.Context) {
	orders, err := h.orderUsecase.RecentOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/search?q=
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	orders, err := h.orderUsecase.SearchOrders(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": c.Query("q"), "orders": orders})
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req orderdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID string
	if user := authdelivery.CurrentUser(c); user != nil {
		userID = user.ID
		if req.CustomerName == "" {
			req.CustomerName = user.FullName()
		}
		if req.CustomerEmail == "" {
			req.CustomerEmail = user.Email
		}
	}

	order, err := h.orderUsecase.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderUsecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus confirms a board move.
// PUT /api/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req orderdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderUsecase.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderUsecase.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrEmptyQuery), errors.Is(err, usecase.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[Order] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
