// Package web serves the dashboard entry page and its static assets.
package web

import (
	"embed"
	"net/http"
)

//go:embed assets/index.html
var assets embed.FS

// Index serves the embedded entry page.
func Index() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := assets.ReadFile("assets/index.html")
		if err != nil {
			http.Error(w, "index unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
	})
}

// Static serves dir under prefix, or nil when dir is empty.
func Static(prefix, dir string) http.Handler {
	if dir == "" {
		return nil
	}
	return http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
}
