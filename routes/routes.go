package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/auth"
	"github.com/Lanterman/online-store/cache"
	"github.com/Lanterman/online-store/middleware"
	productcontroller "github.com/Lanterman/online-store/controllers/product"
	"github.com/Lanterman/online-store/ws"
)

// SetupRoutes wires every endpoint. Each shop route resolves its dispatch
// rule here, so an action missing from the registry panics at startup.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pc *cache.ProductCache, hub *ws.Hub) {
	// Comment creation is throttled per principal.
	commentLimiter := middleware.NewRateLimiter(rate.Every(time.Minute/20), 5)

	// Public auth surface.
	r.POST("/auth/google", auth.GoogleLoginHandler(db))
	r.GET("/auth_html/", auth.AuthPage)

	shop := r.Group("/shop")
	shop.Use(middleware.Authenticate)
	{
		SetupProductRoutes(shop, db, pc, hub, commentLimiter)
		SetupCategoryRoutes(shop, db, pc)
		SetupCommentRoutes(shop, db, hub, commentLimiter)
		SetupBasketRoutes(shop, db)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.Authenticate, middleware.RequireAdmin)
	{
		admin.GET("/products/export-excel", productcontroller.ExportProductsToExcel(db))
		admin.GET("/ws/comments", hub.Handle)
	}
}
