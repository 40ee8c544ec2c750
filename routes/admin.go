package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aayushsiwach/fruit-seller/catalog"
	orderControllers "github.com/aayushsiwach/fruit-seller/controllers/order"
	productcontroller "github.com/aayushsiwach/fruit-seller/controllers/product"
	"github.com/aayushsiwach/fruit-seller/middleware"
	"github.com/aayushsiwach/fruit-seller/repository"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a valid
// token with role admin or seller.
func SetupAdminRoutes(r *gin.Engine, cat *catalog.Service, inv *repository.InventoryRepository, svc orderControllers.OrderService) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireRole("admin", "seller"))
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetProducts(cat))
			productAdmin.POST("", productcontroller.CreateProduct(inv))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(inv))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(inv))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(svc))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(svc))
		}
	}
}
