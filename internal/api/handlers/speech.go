package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/slidepilot/internal/pipeline"
	"github.com/nikhilbhutani/slidepilot/internal/tts"
)

type SpeechHandler struct {
	tts tts.Provider
}

func NewSpeechHandler(provider tts.Provider) *SpeechHandler {
	return &SpeechHandler{tts: provider}
}

// Synthesize relays synthesized speech to the caller chunk by chunk as it
// arrives from the provider, instead of buffering the full payload. A
// failure before the first byte yields a 500; a mid-stream failure simply
// truncates the body.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
		return
	}

	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	stream, err := h.tts.Synthesize(r.Context(), tts.SynthesisRequest{
		Input: text,
		Voice: r.FormValue("voice"),
	})
	if err != nil {
		synthErr := &pipeline.SynthesisError{Err: err}
		slog.Error("speech synthesis failed", "error", synthErr)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": synthErr.Error()})
		return
	}
	defer stream.Body.Close()

	w.Header().Set("Content-Type", stream.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename=speech.mp3`)
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, err := stream.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Warn("speech stream truncated", "error", err)
			}
			return
		}
	}
}
