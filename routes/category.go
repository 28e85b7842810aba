package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/cache"
	categorycontroller "github.com/Lanterman/online-store/controllers/category"
	"github.com/Lanterman/online-store/dispatch"
)

func SetupCategoryRoutes(rg *gin.RouterGroup, db *gorm.DB, pc *cache.ProductCache) {
	g := rg.Group("/category")
	{
		g.GET("/",
			dispatch.Require(dispatch.ResourceCategory, dispatch.ActionList),
			categorycontroller.GetCategories(db))
		g.GET("/:slug/",
			dispatch.Require(dispatch.ResourceCategory, dispatch.ActionRetrieve),
			categorycontroller.GetCategoryBySlug(db))
		g.POST("/",
			dispatch.Require(dispatch.ResourceCategory, dispatch.ActionCreate),
			categorycontroller.CreateCategory(db, pc))
		g.PUT("/:slug/",
			dispatch.Require(dispatch.ResourceCategory, dispatch.ActionUpdate),
			categorycontroller.UpdateCategory(db, pc))
		g.PATCH("/:slug/",
			dispatch.Require(dispatch.ResourceCategory, dispatch.ActionUpdate),
			categorycontroller.UpdateCategory(db, pc))
		g.DELETE("/:slug/",
			dispatch.Require(dispatch.ResourceCategory, dispatch.ActionDestroy),
			categorycontroller.DeleteCategory(db, pc))
	}
}
