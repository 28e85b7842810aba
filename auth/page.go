package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthPage renders the login-options page.
// GET /auth_html/
func AuthPage(c *gin.Context) {
	c.HTML(http.StatusOK, "auth.html", gin.H{
		"title": "Sign in",
	})
}
