package stt

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI STT backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "gpt-4o-transcribe"
}

// OpenAISTT transcribes audio using OpenAI's transcription API
// (or a compatible endpoint).
type OpenAISTT struct {
	client *openai.Client
	model  string
}

// NewOpenAISTT creates an OpenAISTT with sensible defaults applied.
func NewOpenAISTT(cfg OpenAIConfig) *OpenAISTT {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-transcribe"
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAISTT{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (o *OpenAISTT) Name() string { return "openai-stt" }

// Transcribe uploads the audio payload and returns the recognized text.
func (o *OpenAISTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	if len(req.Audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "audio.webm"
	}

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		Reader:   bytes.NewReader(req.Audio),
		FilePath: fileName,
		Prompt:   req.Prompt,
		Language: req.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	return &TranscriptionResponse{
		Text:     resp.Text,
		Duration: resp.Duration,
	}, nil
}
