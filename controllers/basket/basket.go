package basketcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/serializers"
)

// GetBasket returns the requesting principal's basket, creating the row
// on first access. The ownership predicate keeps any other principal's
// basket out of reach.
// GET /basket/
func GetBasket(db *gorm.DB, rule dispatch.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := dispatch.PrincipalFrom(c)

		var basket models.Basket
		if err := db.Where(models.Basket{User: p.Username}).FirstOrCreate(&basket).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basket"})
			return
		}

		if err := rule.CheckObject(p, &basket); err != nil {
			apperr.Abort(c, err)
			return
		}

		if err := db.Preload("Products").First(&basket, basket.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basket"})
			return
		}

		c.JSON(http.StatusOK, serializers.NewBasket(c, &basket))
	}
}
