package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aayushsiwach/fruit-seller/catalog"
	cartControllers "github.com/aayushsiwach/fruit-seller/controllers/cart"
	productcontroller "github.com/aayushsiwach/fruit-seller/controllers/product"
	"github.com/aayushsiwach/fruit-seller/middleware"
)

// SetupCatalogRoutes registers the public product read endpoints.
func SetupCatalogRoutes(r *gin.Engine, cat *catalog.Service) {
	r.GET("/products", productcontroller.GetProducts(cat))
	r.GET("/products/:id", productcontroller.GetProductByID(cat))
}

// SetupCartRoutes registers all "/cart" endpoints. GET tolerates guests
// (empty array); mutations require a valid token.
func SetupCartRoutes(r *gin.Engine, deps cartControllers.Deps) {
	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", middleware.OptionalToken, cartControllers.GetCart(deps))

		authed := cartGroup.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.POST("", cartControllers.AddCartItem(deps))
			authed.PUT("", cartControllers.UpdateCartItem(deps))
			authed.DELETE("", cartControllers.RemoveCartItem(deps))
			authed.DELETE("/clear", cartControllers.ClearCart(deps))
		}
	}
}
