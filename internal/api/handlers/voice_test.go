package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/slidepilot/internal/deck"
	"github.com/nikhilbhutani/slidepilot/internal/pipeline"
)

type fakeProcessor struct {
	ProcessFunc func(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error)
}

func (f *fakeProcessor) Process(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error) {
	return f.ProcessFunc(ctx, req)
}

func voiceForm(t *testing.T, audio []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if audio != nil {
		fw, err := mw.CreateFormFile("audio", "voice.webm")
		require.NoError(t, err)
		_, err = fw.Write(audio)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestProcessAudio_Success(t *testing.T) {
	three := 3
	var seen pipeline.VoiceRequest
	h := NewVoiceHandler(&fakeProcessor{
		ProcessFunc: func(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error) {
			seen = req
			return &pipeline.Result{
				RequestID:       "req-1",
				TranscribedText: "go to slide 3",
				Reply:           "Navigating to slide 3",
				TTSText:         "Navigating to slide 3",
				GotoSlide:       &three,
			}, nil
		},
	}, nil)

	body, contentType := voiceForm(t, []byte("opus"), map[string]string{
		"slide_number": "1",
		"total_slides": "5",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.ProcessAudio(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var env voiceEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "go to slide 3", env.TranscribedText)
	assert.Equal(t, "Navigating to slide 3", env.AIResponse)
	assert.Equal(t, env.AIResponse, env.TTSText)
	require.NotNil(t, env.GotoSlide)
	assert.Equal(t, 3, *env.GotoSlide)
	assert.Equal(t, 1, env.CurrentSlide)

	assert.Equal(t, []byte("opus"), seen.Audio)
	assert.Equal(t, "voice.webm", seen.AudioName)
	assert.Equal(t, 1, seen.Context.SlideNumber)
	assert.Equal(t, 5, seen.Context.TotalSlides)
}

func TestProcessAudio_PipelineFailureIsHTTP200(t *testing.T) {
	h := NewVoiceHandler(&fakeProcessor{
		ProcessFunc: func(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error) {
			return nil, &pipeline.TranscriptionError{Err: errors.New("transcription returned empty text")}
		},
	}, nil)

	body, contentType := voiceForm(t, []byte("silence"), map[string]string{
		"slide_number": "2",
		"total_slides": "5",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.ProcessAudio(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "pipeline failures keep HTTP 200")

	var env voiceEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "transcription")
	assert.Nil(t, env.GotoSlide, "no navigation on failure")
	assert.Equal(t, 2, env.CurrentSlide)
}

func TestProcessAudio_DeckFallbackWhenCaptureUnusable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slide1.png"), []byte("deck-png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slide2.png"), []byte("deck-png-2"), 0o644))
	d, err := deck.Load(dir)
	require.NoError(t, err)

	var seen pipeline.VoiceRequest
	h := NewVoiceHandler(&fakeProcessor{
		ProcessFunc: func(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error) {
			seen = req
			return &pipeline.Result{RequestID: "req-1", TranscribedText: "hi", Reply: "hello", TTSText: "hello"}, nil
		},
	}, d)

	fields := map[string]string{"slide_number": "1", "total_slides": "2"}

	t.Run("no slide_image part", func(t *testing.T) {
		body, contentType := voiceForm(t, []byte("opus"), fields)
		req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.ProcessAudio(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []byte("deck-png"), seen.SlideImage)
		assert.Equal(t, "image/png", seen.ImageMIME)
	})

	t.Run("empty slide_image part", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("audio", "voice.webm")
		require.NoError(t, err)
		_, err = fw.Write([]byte("opus"))
		require.NoError(t, err)
		_, err = mw.CreateFormFile("slide_image", "capture.png")
		require.NoError(t, err)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/process-audio", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		h.ProcessAudio(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []byte("deck-png"), seen.SlideImage,
			"an unusable client capture should not suppress the deck fallback")
	})

	t.Run("client capture wins when present", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("audio", "voice.webm")
		require.NoError(t, err)
		_, err = fw.Write([]byte("opus"))
		require.NoError(t, err)
		iw, err := mw.CreateFormFile("slide_image", "capture.png")
		require.NoError(t, err)
		_, err = iw.Write([]byte("client-png"))
		require.NoError(t, err)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/process-audio", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		h.ProcessAudio(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []byte("client-png"), seen.SlideImage)
	})
}

func TestProcessAudio_MissingFields(t *testing.T) {
	h := NewVoiceHandler(&fakeProcessor{
		ProcessFunc: func(ctx context.Context, req pipeline.VoiceRequest) (*pipeline.Result, error) {
			t.Fatal("pipeline must not run on invalid input")
			return nil, nil
		},
	}, nil)

	tests := []struct {
		name   string
		audio  []byte
		fields map[string]string
	}{
		{"no audio file", nil, map[string]string{"slide_number": "1", "total_slides": "5"}},
		{"missing slide_number", []byte("a"), map[string]string{"total_slides": "5"}},
		{"non-integer total_slides", []byte("a"), map[string]string{"slide_number": "1", "total_slides": "five"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := voiceForm(t, tt.audio, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.ProcessAudio(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
