package categorycontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/cache"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/serializers"
)

// CategoryInput carries the single writable category field; the slug is
// derived from the name.
type CategoryInput struct {
	Name string `json:"name" binding:"required,max=50"`
}

// GetCategories returns all categories with their product counts.
// The category list is not paginated.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []serializers.CategoryWithCount
		err := db.Model(&models.Category{}).
			Select("categories.*, COUNT(products.id) AS number_of_products").
			Joins("LEFT JOIN products ON products.category_id = categories.id").
			Group("categories.id").
			Order("categories.id DESC").
			Find(&categories).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, serializers.NewCategoryList(c, categories))
	}
}

// GetCategoryBySlug returns a category with its products.
func GetCategoryBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		err := db.Preload("Products").Where("slug = ?", c.Param("slug")).First(&category).Error
		if err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}
		c.JSON(http.StatusOK, serializers.NewCategoryDetail(c, &category))
	}
}

// CreateCategory creates a category. Admin only.
func CreateCategory(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category := models.Category{Name: input.Name, Slug: slug.Make(input.Name)}
		if err := db.Create(&category).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Category with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategory renames a category by slug. Admin only. The slug follows
// the new name.
func UpdateCategory(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Where("slug = ?", c.Param("slug")).First(&category).Error; err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category.Name = input.Name
		category.Slug = slug.Make(input.Name)

		if err := db.Save(&category).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Category with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategory deletes a category by slug. Admin only. Products that
// referenced it are detached, not deleted.
func DeleteCategory(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Where("slug = ?", c.Param("slug")).First(&category).Error; err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		err := tx.Model(&models.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach products"})
			return
		}

		if err := tx.Delete(&category).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit category deletion"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}
