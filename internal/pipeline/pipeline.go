package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/nikhilbhutani/slidepilot/internal/deck"
	"github.com/nikhilbhutani/slidepilot/internal/reasoning"
	"github.com/nikhilbhutani/slidepilot/internal/stt"
)

// VoiceRequest is one spoken utterance plus its slide context. It lives
// for the duration of a single Process call.
type VoiceRequest struct {
	Audio      []byte
	AudioName  string
	Context    deck.SlideContext
	SlideImage []byte
	ImageMIME  string
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	RequestID       string
	TranscribedText string
	Reply           string
	TTSText         string
	GotoSlide       *int
}

// Pipeline chains transcription and grounded reasoning into a navigation
// decision. It holds no per-request state; every call is independent.
type Pipeline struct {
	stt       stt.Provider
	responder reasoning.Responder
	sttPrompt string
}

func New(sttProvider stt.Provider, responder reasoning.Responder, sttPrompt string) *Pipeline {
	return &Pipeline{
		stt:       sttProvider,
		responder: responder,
		sttPrompt: sttPrompt,
	}
}

// Process runs audio -> transcription -> schema-constrained reasoning ->
// navigation decision. The first failing stage aborts the request; there
// are no retries and no partial results.
func (p *Pipeline) Process(ctx context.Context, req VoiceRequest) (*Result, error) {
	if len(req.Audio) == 0 {
		return nil, &TranscriptionError{Err: fmt.Errorf("empty audio payload")}
	}
	if err := req.Context.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slide context: %w", err)
	}

	id := uuid.NewString()
	log := slog.With("request_id", id, "slide", req.Context.SlideNumber, "total", req.Context.TotalSlides)

	tr, err := p.stt.Transcribe(ctx, stt.TranscriptionRequest{
		Audio:    req.Audio,
		FileName: req.AudioName,
		Prompt:   p.sttPrompt,
	})
	if err != nil {
		return nil, &TranscriptionError{Err: err}
	}
	transcript := strings.TrimSpace(tr.Text)
	if transcript == "" {
		return nil, &TranscriptionError{Err: fmt.Errorf("transcription returned empty text")}
	}
	log.Info("transcribed utterance", "chars", len(transcript))

	reply, err := p.responder.Reply(ctx, reasoning.ReplyRequest{
		Transcript:  transcript,
		SlideImage:  req.SlideImage,
		ImageMIME:   req.ImageMIME,
		SlideNumber: req.Context.SlideNumber,
		TotalSlides: req.Context.TotalSlides,
	})
	if err != nil {
		return nil, err
	}

	// Navigation decision: forward an in-range target verbatim; discard an
	// out-of-range one rather than failing an otherwise good answer. The
	// client-side navigator no-ops out-of-range jumps as well.
	gotoSlide := reply.GotoSlide
	if gotoSlide != nil && (*gotoSlide < 1 || *gotoSlide > req.Context.TotalSlides) {
		log.Warn("discarding out-of-range navigation target", "goto_slide", *gotoSlide)
		gotoSlide = nil
	}
	if gotoSlide != nil {
		log.Info("navigation requested", "goto_slide", *gotoSlide)
	}

	return &Result{
		RequestID:       id,
		TranscribedText: transcript,
		Reply:           reply.Response,
		TTSText:         reply.Response,
		GotoSlide:       gotoSlide,
	}, nil
}
