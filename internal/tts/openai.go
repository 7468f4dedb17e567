package tts

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI TTS backend.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string // default: "https://api.openai.com/v1"
	Model        string // default: "gpt-4o-mini-tts"
	DefaultVoice string // default: "alloy"
}

// OpenAITTS synthesizes speech using OpenAI's speech API. The response
// body is returned unread so callers can relay it chunk by chunk.
type OpenAITTS struct {
	client       *openai.Client
	model        string
	defaultVoice string
}

// NewOpenAITTS creates an OpenAITTS with sensible defaults applied.
func NewOpenAITTS(cfg OpenAIConfig) *OpenAITTS {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini-tts"
	}
	if cfg.DefaultVoice == "" {
		cfg.DefaultVoice = "alloy"
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAITTS{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.Model,
		defaultVoice: cfg.DefaultVoice,
	}
}

func (o *OpenAITTS) Name() string { return "openai-tts" }

// Synthesize starts speech generation and returns the audio stream.
// It fails before returning a stream only when the provider rejects the
// request outright; mid-stream failures surface as read errors.
func (o *OpenAITTS) Synthesize(ctx context.Context, req SynthesisRequest) (*Stream, error) {
	if req.Input == "" {
		return nil, fmt.Errorf("empty input text")
	}

	voice := req.Voice
	if !Voices[voice] {
		voice = o.defaultVoice
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(o.model),
		Input: req.Input,
		Voice: openai.SpeechVoice(voice),
	})
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}

	return &Stream{
		Body:        resp,
		ContentType: "audio/mpeg",
	}, nil
}
