package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/cache"
	"github.com/Lanterman/online-store/models"
)

// ProductUpdateInput carries optional fields for PUT/PATCH; nil means
// "leave unchanged". The slug is never accepted from the client.
type ProductUpdateInput struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Price       *uint   `json:"price"`
	StockIn     *bool   `json:"stock_in"`
	Category    *uint   `json:"category"`
	Photo       *string `json:"photo"`
	Description *string `json:"description"`
}

// UpdateProduct updates a product by slug. Admin only. The slug is
// re-derived from the resulting name, so a rename moves the product to a
// new URL and the old one stops resolving.
func UpdateProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.StockIn != nil {
			product.StockIn = *input.StockIn
		}
		if input.Category != nil {
			var category models.Category
			if err := db.First(&category, *input.Category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
				}
				return
			}
			product.CategoryID = input.Category
		}
		if input.Photo != nil {
			product.Photo = *input.Photo
		}
		if input.Description != nil {
			product.Description = *input.Description
		}

		product.Slug = slug.Make(product.Name)

		if err := db.Save(&product).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, product)
	}
}
