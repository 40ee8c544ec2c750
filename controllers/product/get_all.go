package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aayushsiwach/fruit-seller/catalog"
	"github.com/aayushsiwach/fruit-seller/errs"
)

// GET /products
//
// Query params: category (exact), sort (price_asc|price_desc), featured
// (presence flag), search (free text, OR over name/category/description),
// related (product id).
func GetProducts(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Category:  c.Query("category"),
			Search:    c.Query("search"),
			RelatedTo: c.Query("related"),
		}
		if _, ok := c.GetQuery("featured"); ok {
			q.Featured = true
		}
		switch c.Query("sort") {
		case "price_asc":
			q.PriceSort = "asc"
		case "price_desc":
			q.PriceSort = "desc"
		}

		products, err := cat.List(c.Request.Context(), q)
		if err != nil {
			var invalidRef *errs.InvalidReferenceError
			if errors.As(err, &invalidRef) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Related product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
