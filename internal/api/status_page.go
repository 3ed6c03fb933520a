package api

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Embedded status page assets.
//
//go:embed dist/*
var embeddedUI embed.FS

func statusPageFS() static.ServeFileSystem {
	fs, err := static.EmbedFolder(embeddedUI, "dist")
	if err != nil {
		panic("failed to get embedded status page filesystem: " + err.Error())
	}
	return fs
}

// MountStatusPage serves the embedded status page at the root path. API and
// Swagger routes are left untouched.
func MountStatusPage(r *gin.Engine, logger *slog.Logger) {
	distFS := statusPageFS()
	r.Use(static.Serve("/", distFS))

	r.NoRoute(func(c *gin.Context) {
		uri := c.Request.RequestURI
		if strings.HasPrefix(uri, "/api") || strings.HasPrefix(uri, "/swagger") {
			return
		}
		index, err := distFS.Open("index.html")
		if err != nil {
			if logger != nil {
				logger.Error("failed to open index.html", "error", err)
			}
			return
		}
		defer index.Close()
		stat, _ := index.Stat()
		http.ServeContent(c.Writer, c.Request, "index.html", stat.ModTime(), index)
	})
}
