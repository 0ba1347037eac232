// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"roleLabel": RoleLabel,
	"lower":     strings.ToLower,
	"inc":       func(n int) int { return n + 1 },
}

// RoleLabel is the display name of a role.
func RoleLabel(r domain.Role) string {
	switch r {
	case domain.RoleAdmin:
		return "Administrador"
	case domain.RoleStock:
		return "Estoque"
	}
	return string(r)
}

// Templates parses every page template. Gin renders them by file name.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
