// Package web holds the embedded HTML templates and stylesheets served
// by the page endpoints.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Layout is the template every page renders through. The "Page" key in
// the render data selects the body.
const Layout = "base"

const (
	PageLogin             = "login"
	PageRegister          = "register"
	PageAppointments      = "appointments"
	PageAddAppointment    = "add-appointment"
	PageAdminAppointments = "admin-appointments"
	PageWelcome           = "welcome"
)

func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// CSS serves the stylesheets mounted under /css.
func CSS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static/css")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
