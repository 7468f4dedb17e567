package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/nikhilbhutani/slidepilot/internal/deck"
)

type StaticHandler struct {
	webDir string
	deck   *deck.Deck
}

func NewStaticHandler(webDir string, d *deck.Deck) *StaticHandler {
	return &StaticHandler{webDir: webDir, deck: d}
}

// Index serves the app shell, falling back to a JSON endpoint listing when
// no index.html has been deployed.
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.webDir, "index.html")
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "slidepilot backend running",
			"endpoints": map[string]string{
				"process_audio": "/api/process-audio",
				"tts":           "/api/text-to-speech",
				"slides":        "/slides/{name}",
			},
		})
		return
	}
	http.ServeFile(w, r, path)
}

// AppJS serves the client script.
func (h *StaticHandler) AppJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	http.ServeFile(w, r, filepath.Join(h.webDir, "app.js"))
}

// StyleCSS serves the stylesheet.
func (h *StaticHandler) StyleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	http.ServeFile(w, r, filepath.Join(h.webDir, "style.css"))
}

// Slide serves one slide image by file name.
func (h *StaticHandler) Slide(w http.ResponseWriter, r *http.Request) {
	if h.deck == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no slide deck configured"})
		return
	}

	name := chi.URLParam(r, "name")
	path, mime, err := h.deck.Open(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "slide not found"})
		return
	}

	w.Header().Set("Content-Type", mime)
	http.ServeFile(w, r, path)
}
