package tts

import (
	"context"
	"io"
)

// SynthesisRequest holds the parameters for text-to-speech generation.
type SynthesisRequest struct {
	Input string `json:"input"`
	Voice string `json:"voice,omitempty"`
}

// Stream is synthesized audio delivered as an incrementally readable body.
// The caller owns Body and must close it; reading it lazily is the point —
// relaying chunks as they arrive keeps synthesis latency off the user.
type Stream struct {
	Body        io.ReadCloser
	ContentType string // "audio/mpeg" for the OpenAI backend
}

// Provider is the interface for text-to-speech backends.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*Stream, error)
	Name() string
}

// Voices supported by the OpenAI speech API. Unknown identifiers fall
// back to the configured default rather than failing the request.
var Voices = map[string]bool{
	"alloy":   true,
	"ash":     true,
	"echo":    true,
	"fable":   true,
	"onyx":    true,
	"nova":    true,
	"shimmer": true,
}
