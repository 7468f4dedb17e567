package reasoning

import (
	"context"
	"fmt"
)

// StructuredReply is the schema-enforced result of one reasoning call.
// It is only ever produced through a provider-side JSON schema constraint,
// never by scraping free-form model text.
type StructuredReply struct {
	// Response is the spoken answer for the presenter. Never empty on success.
	Response string `json:"response"`
	// GotoSlide is set only when the user explicitly asked to navigate.
	GotoSlide *int `json:"goto_slide"`
}

// ReplyRequest carries one transcribed utterance plus its slide context.
type ReplyRequest struct {
	Transcript  string
	SlideImage  []byte // optional; raw image bytes of the current slide
	ImageMIME   string // defaults to image/png when SlideImage is set
	SlideNumber int
	TotalSlides int
}

// Responder turns an utterance grounded on the current slide into a
// StructuredReply.
type Responder interface {
	Reply(ctx context.Context, req ReplyRequest) (*StructuredReply, error)
	Name() string
}

// SchemaViolationError reports that the reasoning provider could not
// produce a schema-conformant reply. Raw retains the offending output
// for diagnostics.
type SchemaViolationError struct {
	Raw string
	Err error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("reply violates schema: %v", e.Err)
}

func (e *SchemaViolationError) Unwrap() error { return e.Err }
