// Package web embeds and serves the single-page client.
package web

import (
	"embed"

	"github.com/labstack/echo/v4"
)

//go:embed index.html app.js style.css
var assets embed.FS

// Register mounts the client assets on the echo instance.
func Register(e *echo.Echo) {
	e.FileFS("/", "index.html", assets)
	e.FileFS("/app.js", "app.js", assets)
	e.FileFS("/style.css", "style.css", assets)
}
