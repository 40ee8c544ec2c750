package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/aayushsiwach/fruit-seller/controllers/order"
	"github.com/aayushsiwach/fruit-seller/middleware"
)

// SetupOrderRoutes registers the shopper-facing order endpoints.
func SetupOrderRoutes(r *gin.Engine, svc orderControllers.OrderService) {
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.ValidateToken)
	{
		orderGroup.POST("", orderControllers.PlaceOrderHandler(svc))
		orderGroup.GET("", orderControllers.GetUserOrdersHandler(svc))
		orderGroup.GET("/:id", orderControllers.GetOrderHandler(svc))
	}
}
