package cartControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aayushsiwach/fruit-seller/cartstore"
	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

// Deps are the collaborators every cart handler needs: product point reads
// for joins/revalidation and the session-local persistence.
type Deps struct {
	Products cartstore.ProductGetter
	Persist  cartstore.Persistence
}

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// notices collects the store's user-facing messages for one request.
type notices struct {
	last     string
	warnings []string
}

func (n *notices) Success(msg string) { n.last = msg }
func (n *notices) Error(msg string)   { n.last = msg }
func (n *notices) Warning(msg string) { n.warnings = append(n.warnings, msg) }

// openCart builds and loads the caller's cart store. The cart is loaded
// fresh per request; the durable copy in redis is the source of truth.
func openCart(c *gin.Context, deps Deps, n *notices) (*cartstore.Store, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	store := cartstore.New(userID, deps.Products, deps.Persist, n)
	if err := store.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return nil, false
	}
	return store, true
}

// GET /cart
//
// Returns the persisted cart joined with current product snapshots. Guests
// (no valid token) get an empty array; their carts live client-side only.
func GetCart(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusOK, []models.CartEntry{})
			return
		}

		n := &notices{}
		store := cartstore.New(userID, deps.Products, deps.Persist, n)
		if err := store.Load(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		for _, w := range n.warnings {
			log.Printf("cart %s: %s", userID, w)
		}

		entries := []models.CartEntry{}
		for _, line := range store.Lines() {
			product, err := deps.Products.Get(c.Request.Context(), line.ProductID)
			if err != nil {
				continue
			}
			entries = append(entries, models.CartEntry{Product: *product, Quantity: line.Quantity})
		}

		c.JSON(http.StatusOK, entries)
	}
}

// POST /cart
//
// Adds a line or merges into an existing one. The requested total must not
// exceed current stock.
func AddCartItem(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID or quantity"})
			return
		}

		n := &notices{}
		store, ok := openCart(c, deps, n)
		if !ok {
			return
		}

		product, err := deps.Products.Get(c.Request.Context(), input.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		if err := store.Add(c.Request.Context(), product, input.Quantity); err != nil {
			if errors.Is(err, errs.ErrInsufficientStock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": n.last})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": n.last, "cart": store.Lines()})
	}
}

// PUT /cart
//
// Sets a line's quantity, with the same stock validation as POST.
func UpdateCartItem(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID or quantity"})
			return
		}

		n := &notices{}
		store, ok := openCart(c, deps, n)
		if !ok {
			return
		}

		product, err := deps.Products.Get(c.Request.Context(), input.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		if err := store.Update(c.Request.Context(), input.ProductID, input.Quantity, product.Quantity); err != nil {
			if errors.Is(err, errs.ErrInsufficientStock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": n.last})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": n.last, "cart": store.Lines()})
	}
}

// DELETE /cart?product_id=...
//
// Removes a line. Removing an absent line is a no-op success.
func RemoveCartItem(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Query("product_id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		n := &notices{}
		store, ok := openCart(c, deps, n)
		if !ok {
			return
		}

		if err := store.Remove(c.Request.Context(), productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// DELETE /cart/clear
func ClearCart(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := &notices{}
		store, ok := openCart(c, deps, n)
		if !ok {
			return
		}

		if err := store.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
