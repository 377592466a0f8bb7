package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// handleStatic serves the built front end. Unknown paths fall back to
// index.html so client-side routing works on reload.
func (s *Server) handleStatic() http.HandlerFunc {
	fs := http.FileServer(http.Dir(s.staticDir))

	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
	}
}
