package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nikhilbhutani/slidepilot/internal/deck"
	"github.com/nikhilbhutani/slidepilot/internal/pipeline"
)

// Processor runs the voice pipeline. Satisfied by *pipeline.Pipeline.
type Processor interface {
	Process(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error)
}

// voiceEnvelope is the JSON response for /api/process-audio. Pipeline
// failures still return HTTP 200 with success=false; the client treats the
// envelope, not the status code, as the outcome.
type voiceEnvelope struct {
	Success         bool   `json:"success"`
	RequestID       string `json:"request_id,omitempty"`
	TranscribedText string `json:"transcribed_text"`
	AIResponse      string `json:"ai_response"`
	GotoSlide       *int   `json:"goto_slide"`
	CurrentSlide    int    `json:"current_slide"`
	TTSText         string `json:"tts_text,omitempty"`
	Error           string `json:"error,omitempty"`
}

type VoiceHandler struct {
	pipeline Processor
	deck     *deck.Deck // optional server-side slide capture fallback
}

func NewVoiceHandler(p Processor, d *deck.Deck) *VoiceHandler {
	return &VoiceHandler{pipeline: p, deck: d}
}

// ProcessAudio handles the full voice round trip: multipart audio +
// slide context in, transcript + reply + navigation decision out.
func (h *VoiceHandler) ProcessAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	slideNumber, err := strconv.Atoi(r.FormValue("slide_number"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slide_number must be an integer"})
		return
	}
	totalSlides, err := strconv.Atoi(r.FormValue("total_slides"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_slides must be an integer"})
		return
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "audio file required"})
		return
	}
	defer audioFile.Close()

	audio, err := io.ReadAll(audioFile)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read audio"})
		return
	}

	req := pipeline.VoiceRequest{
		Audio:     audio,
		AudioName: audioHeader.Filename,
		Context:   deck.SlideContext{SlideNumber: slideNumber, TotalSlides: totalSlides},
	}

	if imageFile, imageHeader, err := r.FormFile("slide_image"); err == nil {
		img, rerr := io.ReadAll(imageFile)
		imageFile.Close()
		if rerr != nil {
			slog.Warn("discarding unreadable slide_image upload", "error", rerr, "slide", slideNumber)
		} else {
			req.SlideImage = img
			req.ImageMIME = imageHeader.Header.Get("Content-Type")
		}
	}
	if len(req.SlideImage) == 0 && h.deck != nil {
		// Missing or unusable client capture: fall back to the deck's own
		// image of the slide.
		if img, mime, err := h.deck.Image(slideNumber); err == nil {
			req.SlideImage = img
			req.ImageMIME = mime
		}
	}

	result, err := h.pipeline.Process(r.Context(), req)
	if err != nil {
		slog.Error("voice pipeline failed", "error", err, "slide", slideNumber)
		writeJSON(w, http.StatusOK, voiceEnvelope{
			Success:      false,
			AIResponse:   "Sorry, there was an error processing your audio.",
			CurrentSlide: slideNumber,
			Error:        err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, voiceEnvelope{
		Success:         true,
		RequestID:       result.RequestID,
		TranscribedText: result.TranscribedText,
		AIResponse:      result.Reply,
		GotoSlide:       result.GotoSlide,
		CurrentSlide:    slideNumber,
		TTSText:         result.TTSText,
	})
}
