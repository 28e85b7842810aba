package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/cache"
	productcontroller "github.com/Lanterman/online-store/controllers/product"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/middleware"
	"github.com/Lanterman/online-store/ws"
)

func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, pc *cache.ProductCache, hub *ws.Hub, limiter *middleware.RateLimiter) {
	g := rg.Group("/product")
	{
		g.GET("/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionList),
			productcontroller.GetProducts(db, pc))
		g.GET("/:slug/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionRetrieve),
			productcontroller.GetProductBySlug(db))
		g.POST("/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionCreate),
			productcontroller.CreateProduct(db, pc))
		g.PUT("/:slug/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionUpdate),
			productcontroller.UpdateProduct(db, pc))
		g.PATCH("/:slug/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionUpdate),
			productcontroller.UpdateProduct(db, pc))
		g.DELETE("/:slug/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionDestroy),
			productcontroller.DeleteProduct(db, pc))
		g.POST("/:slug/add_comment/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionAddComment),
			limiter.Middleware(),
			productcontroller.AddComment(db, hub))
		g.GET("/:slug/add_or_del_product_to_basket/",
			dispatch.Require(dispatch.ResourceProduct, dispatch.ActionBasketToggle),
			productcontroller.ToggleBasket(db))
	}
}
