package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/httpresp"
	"github.com/BruksfildServices01/clinic-booking/internal/web"
)

type AppWebHandler struct{}

func NewAppWebHandler() *AppWebHandler {
	return &AppWebHandler{}
}

// Welcome is the landing page for roles without a page of their own.
func (h *AppWebHandler) Welcome(c *gin.Context) {
	render(c, http.StatusOK, web.PageWelcome, nil)
}

// NotFound answers unknown routes, in JSON under /api.
func (h *AppWebHandler) NotFound(c *gin.Context) {
	if auth.IsAPIPath(c.Request.URL.Path) {
		httperr.NotFound(c, httperr.CodeNotFound, "Resource not found.")
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}

func (h *AppWebHandler) Health(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": "ok"})
}
