package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aayushsiwach/fruit-seller/catalog"
	cartControllers "github.com/aayushsiwach/fruit-seller/controllers/cart"
	orderControllers "github.com/aayushsiwach/fruit-seller/controllers/order"
	"github.com/aayushsiwach/fruit-seller/orders"
	"github.com/aayushsiwach/fruit-seller/repository"
)

// Deps bundles the service objects the route groups hand to their handlers.
type Deps struct {
	Catalog   *catalog.Service
	Inventory *repository.InventoryRepository
	Orders    *orders.Service
	Cart      cartControllers.Deps
}

// SetupRoutes is the single entry-point that wires up the public, user and
// admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	orderService := orderControllers.OrderService(deps.Orders)

	// Public catalog reads
	SetupCatalogRoutes(r, deps.Catalog)

	// Cart endpoints (JWT-protected mutations, guest-tolerant GET)
	SetupCartRoutes(r, deps.Cart)

	// Order endpoints (JWT-protected)
	SetupOrderRoutes(r, orderService)

	// Admin endpoints (JWT + role-gated)
	SetupAdminRoutes(r, deps.Catalog, deps.Inventory, orderService)
}
