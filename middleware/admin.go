package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/dispatch"
)

// RequireAdmin gates routes that sit outside the resource/action table,
// such as the admin export and the live comment feed.
func RequireAdmin(c *gin.Context) {
	p, _ := dispatch.PrincipalFrom(c)
	if err := dispatch.IsAdmin(p); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.Next()
}
