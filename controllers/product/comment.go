package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/ws"
)

// CommentInput is the only client-supplied part of a comment; author,
// product and parent are all injected server-side.
type CommentInput struct {
	Description string `json:"description" binding:"required"`
}

// AddComment creates a top-level comment on a product. Requires auth.
// POST /product/:slug/add_comment/
func AddComment(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
			return
		}

		var product models.Product
		if err := db.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}

		p, _ := dispatch.PrincipalFrom(c)
		comment := models.Comment{
			UserID:      &p.ID,
			ProductID:   product.ID,
			Description: input.Description,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
			return
		}

		hub.BroadcastComment(ws.CommentEvent{
			ProductSlug: product.Slug,
			CommentID:   comment.ID,
			User:        p.Username,
			Description: comment.Description,
			Date:        comment.Date,
		})

		c.JSON(http.StatusCreated, gin.H{
			"status": "Comment added",
			"info":   gin.H{"description": comment.Description},
		})
	}
}
