package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aayushsiwach/fruit-seller/models"
)

// CreateProduct creates a new product record. Admin/seller only; the role
// gate sits in the route group.
func CreateProduct(inv Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if msg := input.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		var product models.Product
		input.apply(&product)

		if err := inv.Create(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
