package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

//go:embed static
var staticFiles embed.FS

// StaticHandler serves the embedded single-page UI
type StaticHandler struct {
	files fs.FS
}

// NewStaticHandler creates a new static file handler
func NewStaticHandler() *StaticHandler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("embedded static directory missing: " + err.Error())
	}
	return &StaticHandler{files: sub}
}

// ServeStatic serves static files and the main HTML page
func (h *StaticHandler) ServeStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}

	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType(name, data))
	if name == "index.html" {
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

// contentType returns the content type for a file, sniffing what the
// extension does not settle
func contentType(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".svg":
		return "image/svg+xml"
	default:
		return mimetype.Detect(data).String()
	}
}
