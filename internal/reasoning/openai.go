package reasoning

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// slideReplySchema is the strict JSON schema the provider must satisfy.
// goto_slide is nullable rather than optional so strict mode can require
// every property.
var slideReplySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"response": {
			"type": "string",
			"description": "Brief conversational answer to speak back to the presenter."
		},
		"goto_slide": {
			"type": ["integer", "null"],
			"description": "Target slide number, only when the user explicitly asked to navigate."
		}
	},
	"required": ["response", "goto_slide"],
	"additionalProperties": false
}`)

// OpenAIConfig holds configuration for the OpenAI reasoning backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "gpt-4.1-mini"; must be vision-capable
}

// OpenAIResponder answers slide questions with a vision-capable chat model,
// constrained to the StructuredReply schema at the provider.
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewOpenAIResponder creates an OpenAIResponder with sensible defaults applied.
func NewOpenAIResponder(cfg OpenAIConfig) *OpenAIResponder {
	if cfg.Model == "" {
		cfg.Model = "gpt-4.1-mini"
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIResponder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (o *OpenAIResponder) Name() string { return "openai-chat" }

// Reply sends the transcript and slide image to the model and decodes the
// schema-constrained result. A non-conformant or empty reply fails with
// *SchemaViolationError rather than a best-effort guess.
func (o *OpenAIResponder) Reply(ctx context.Context, req ReplyRequest) (*StructuredReply, error) {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: req.Transcript},
	}
	if len(req.SlideImage) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/png"
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(req.SlideImage))
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto},
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(req.SlideNumber, req.TotalSlides),
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        "slide_reply",
				Description: "Spoken reply with an optional slide navigation target",
				Schema:      slideReplySchema,
				Strict:      true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("reasoning request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, &SchemaViolationError{Err: fmt.Errorf("provider returned no choices")}
	}
	content := resp.Choices[0].Message.Content

	var reply StructuredReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, &SchemaViolationError{Raw: content, Err: err}
	}
	if strings.TrimSpace(reply.Response) == "" {
		return nil, &SchemaViolationError{Raw: content, Err: fmt.Errorf("empty response text")}
	}

	return &reply, nil
}

// systemPrompt grounds the model on the current slide and spells out the
// navigation vocabulary with next/previous already clamped to the deck bounds.
func systemPrompt(slide, total int) string {
	next := slide + 1
	if next > total {
		next = total
	}
	prev := slide - 1
	if prev < 1 {
		prev = 1
	}

	return fmt.Sprintf(`You are presenting a slide deck. The user is currently on slide %d out of %d total slides.

Your task:
1. Answer the user's question based ONLY on the content of the current slide shown in the image
2. Keep your response brief, clear, and conversational
3. ONLY set goto_slide if the user EXPLICITLY asks to navigate to a different slide
4. If the user is just asking a question about the content, set goto_slide to null and answer based on the current slide
5. If the user asks about something not on the current slide, inform them it doesn't contain that information, but do NOT automatically change the slide unless they explicitly request it

Navigation rules:
- "Go to slide X" or "Show slide X" -> set goto_slide = X (where X is 1-%d)
- "Next slide" or "Show me the next slide" -> set goto_slide = %d
- "Previous slide" or "Go back" -> set goto_slide = %d
- "First slide" -> set goto_slide = 1
- "Last slide" -> set goto_slide = %d`, slide, total, total, next, prev, total)
}
