package orderControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

// OrderService is the slice of the order service the handlers need.
type OrderService interface {
	Create(ctx context.Context, userRef string, lines []models.CartLine, claimedTotal decimal.Decimal) (*models.Order, error)
	GetForUser(ctx context.Context, userRef, orderID string) (*models.Order, error)
	ListForUser(ctx context.Context, userRef string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}

type PlaceOrderRequest struct {
	Cart  []models.CartLine `json:"cart" binding:"required"`
	Total decimal.Decimal   `json:"total" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders
//
// Converts the submitted cart into an order. The client is expected to
// clear its cart on success; no cart state is touched here.
func PlaceOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart or total"})
			return
		}

		order, err := svc.Create(c.Request.Context(), userID, req.Cart, req.Total)
		if err != nil {
			var validation *errs.ValidationError
			switch {
			case errors.As(err, &validation):
				c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
			case errors.Is(err, errs.ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, errs.ErrNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// GET /orders
func GetUserOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orders, err := svc.ListForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := svc.GetForUser(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, errs.ErrForbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:id/status
func UpdateOrderStatusHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}

		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}
