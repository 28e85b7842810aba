package productcontroller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/cache"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/serializers"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// GetProducts returns the paginated product list.
// Filters: search (name, category name), min_price, max_price, category,
// stock_in. Sorting: sort_by=name|price, order=asc|desc.
func GetProducts(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload, ok := pc.GetList(c.Request.Context(), c.Request.URL.RawQuery); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}

		query := db.Model(&models.Product{}).Preload("Category")

		if search := c.Query("search"); search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.
				Joins("LEFT JOIN categories ON categories.id = products.category_id").
				Where("LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?", likePattern, likePattern)
		}

		if minPriceStr := c.Query("min_price"); minPriceStr != "" {
			mp, err := strconv.ParseUint(minPriceStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
			mp, err := strconv.ParseUint(maxPriceStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		if categoryID := c.Query("category"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			query = query.Where("category_id = ?", uint(cid))
		}

		if stockStr := c.Query("stock_in"); stockStr != "" {
			stockIn, err := strconv.ParseBool(stockStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_in"})
				return
			}
			query = query.Where("stock_in = ?", stockIn)
		}

		sortBy := c.DefaultQuery("sort_by", "id")
		if sortBy != "name" && sortBy != "price" && sortBy != "id" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		page, pageSize := pagination(c)
		var products []models.Product
		err := query.
			Order("products." + sortBy + " " + sortOrder).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		response := serializers.Page{Count: count, Results: serializers.NewProductList(c, products)}
		if payload, err := json.Marshal(response); err == nil {
			pc.SetList(c.Request.Context(), c.Request.URL.RawQuery, payload)
		}
		c.JSON(http.StatusOK, response)
	}
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
