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

// ProductInput carries the writable product fields. The slug is not among
// them: it is always derived from the name, so a client-supplied value is
// silently ignored.
type ProductInput struct {
	Name        string `json:"name" binding:"required,max=50"`
	Price       uint   `json:"price"`
	StockIn     bool   `json:"stock_in"`
	Category    *uint  `json:"category"`
	Photo       string `json:"photo"`
	Description string `json:"description"`
}

// CreateProduct creates a product. Admin only.
func CreateProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
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
		}

		if input.Description == "" {
			input.Description = models.DefaultDescription
		}

		product := models.Product{
			Name:        input.Name,
			Slug:        slug.Make(input.Name),
			CategoryID:  input.Category,
			Price:       input.Price,
			StockIn:     input.StockIn,
			Photo:       input.Photo,
			Description: input.Description,
		}

		if err := db.Create(&product).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, product)
	}
}
