package stt

import "context"

// TranscriptionRequest holds the parameters for audio transcription.
type TranscriptionRequest struct {
	Audio    []byte `json:"-"`
	FileName string `json:"file_name"` // original upload name; the provider infers the container from its extension
	Prompt   string `json:"prompt,omitempty"`
	Language string `json:"language,omitempty"`
}

// TranscriptionResponse holds the transcription result.
type TranscriptionResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Provider is the interface for speech-to-text backends.
type Provider interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
	Name() string
}
