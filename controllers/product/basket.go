package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/models"
)

// ToggleBasket flips the product's membership in the requesting
// principal's basket: present means remove, absent means add. The basket
// row is created on first use.
// GET /product/:slug/add_or_del_product_to_basket/
func ToggleBasket(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}

		p, _ := dispatch.PrincipalFrom(c)
		var basket models.Basket
		if err := db.Where(models.Basket{User: p.Username}).FirstOrCreate(&basket).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basket"})
			return
		}

		membership := db.Model(&basket).Association("Products")
		var existing []models.Product
		if err := membership.Find(&existing, "products.id = ?", product.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read basket"})
			return
		}

		if len(existing) > 0 {
			if err := membership.Delete(&product); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove product from basket"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "removed", "detail": "Product removed from basket."})
			return
		}

		if err := membership.Append(&product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product to basket"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "added", "detail": "Product added to basket."})
	}
}
