package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	"github.com/BruksfildServices01/clinic-booking/internal/web"
)

// render draws page through the shared layout. The signed-in user, when
// there is one, is added to data for the header.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page

	if p, ok := middleware.PrincipalFrom(c); ok {
		data["Email"] = p.Identifier
		data["Role"] = p.Role()
	}

	c.HTML(status, web.Layout, data)
}

func actorEmail(c *gin.Context) string {
	if p, ok := middleware.PrincipalFrom(c); ok {
		return p.Identifier
	}
	return ""
}
