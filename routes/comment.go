package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	commentcontroller "github.com/Lanterman/online-store/controllers/comment"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/middleware"
	"github.com/Lanterman/online-store/ws"
)

func SetupCommentRoutes(rg *gin.RouterGroup, db *gorm.DB, hub *ws.Hub, limiter *middleware.RateLimiter) {
	replyRule := dispatch.MustRule(dispatch.ResourceComment, dispatch.ActionAddComment)

	g := rg.Group("/comment")
	{
		g.GET("/:id/",
			dispatch.Require(dispatch.ResourceComment, dispatch.ActionRetrieve),
			commentcontroller.GetCommentByID(db))
		g.POST("/:id/add_comment/",
			dispatch.Require(dispatch.ResourceComment, dispatch.ActionAddComment),
			limiter.Middleware(),
			commentcontroller.AddReply(db, replyRule, hub))
	}
}
