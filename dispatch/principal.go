package dispatch

import "github.com/gin-gonic/gin"

const principalKey = "principal"

const RoleAdmin = "admin"

// Principal is the authenticated identity behind a request, extracted from
// the bearer token by the auth middleware.
type Principal struct {
	ID       string
	Username string
	Email    string
	Role     string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// SetPrincipal stores the principal on the request context.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the request's principal, or (nil, false) for an
// anonymous request.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
