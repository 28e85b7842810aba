package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/serializers"
)

// GetProductBySlug returns a single product with its category and comment
// tree. URL param: /product/:slug/
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.
			Preload("Category").
			Preload("Comments.User").
			Where("slug = ?", c.Param("slug")).
			First(&product).Error
		if err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}
		c.JSON(http.StatusOK, serializers.NewProductDetail(c, &product))
	}
}
