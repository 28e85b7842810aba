package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	basketcontroller "github.com/Lanterman/online-store/controllers/basket"
	"github.com/Lanterman/online-store/dispatch"
)

func SetupBasketRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	basketRule := dispatch.MustRule(dispatch.ResourceBasket, dispatch.ActionList)

	g := rg.Group("/basket")
	{
		g.GET("/",
			dispatch.Require(dispatch.ResourceBasket, dispatch.ActionList),
			basketcontroller.GetBasket(db, basketRule))
	}
}
