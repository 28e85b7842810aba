package commentcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/serializers"
	"github.com/Lanterman/online-store/ws"
)

type ReplyInput struct {
	Description string `json:"description" binding:"required"`
}

// GetCommentByID returns a single comment. Roots render with their
// children embedded, replies render flat.
func GetCommentByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comment models.Comment
		err := db.
			Preload("User").
			Preload("Children.User").
			First(&comment, "id = ?", c.Param("id")).Error
		if err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}
		c.JSON(http.StatusOK, serializers.NewCommentDetail(c, &comment))
	}
}

// AddReply creates a reply under a root comment. Requires auth, and the
// target must itself have no parent: one level of nesting, never more.
// The reply inherits the target's product.
// POST /comment/:id/add_comment/
func AddReply(db *gorm.DB, rule dispatch.Rule, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var target models.Comment
		if err := db.First(&target, "id = ?", c.Param("id")).Error; err != nil {
			apperr.Abort(c, apperr.FromStore(err))
			return
		}

		p, _ := dispatch.PrincipalFrom(c)
		if err := rule.CheckObject(p, &target); err != nil {
			apperr.Abort(c, err)
			return
		}

		var input ReplyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
			return
		}

		reply := models.Comment{
			UserID:      &p.ID,
			ProductID:   target.ProductID,
			ParentID:    &target.ID,
			Description: input.Description,
		}
		if err := db.Create(&reply).Error; err != nil {
			if errors.Is(err, models.ErrReplyDepth) {
				apperr.Abort(c, apperr.ErrForbidden)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reply"})
			return
		}

		var product models.Product
		if err := db.Select("slug").First(&product, target.ProductID).Error; err == nil {
			hub.BroadcastComment(ws.CommentEvent{
				ProductSlug: product.Slug,
				CommentID:   reply.ID,
				ParentID:    reply.ParentID,
				User:        p.Username,
				Description: reply.Description,
				Date:        reply.Date,
			})
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "Comment added",
			"info":   gin.H{"description": reply.Description},
		})
	}
}
