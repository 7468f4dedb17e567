package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/slidepilot/internal/api/handlers"
	"github.com/nikhilbhutani/slidepilot/internal/api/middleware"
	"github.com/nikhilbhutani/slidepilot/internal/config"
	"github.com/nikhilbhutani/slidepilot/internal/deck"
	"github.com/nikhilbhutani/slidepilot/internal/pipeline"
	"github.com/nikhilbhutani/slidepilot/internal/reasoning"
	"github.com/nikhilbhutani/slidepilot/internal/stt"
	"github.com/nikhilbhutani/slidepilot/internal/tts"
)

type Router struct {
	mux  *chi.Mux
	cfg  *config.Config
	deck *deck.Deck // nil when no slide directory is configured
}

// NewRouter wires the provider stack behind the HTTP surface. slideDeck may
// be nil; the voice endpoint then relies on client-captured slide images.
func NewRouter(cfg *config.Config, slideDeck *deck.Deck) *Router {
	return &Router{
		mux:  chi.NewRouter(),
		cfg:  cfg,
		deck: slideDeck,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.Web.AllowedOrigins))

	rl := middleware.NewRateLimiter(rt.cfg.Server.RateLimitRPS, rt.cfg.Server.RateLimitBurst)
	r.Use(rl.Limit)

	r.Get("/healthz", handlers.Healthz)

	// Provider stack
	sttProvider := stt.NewOpenAISTT(stt.OpenAIConfig{
		APIKey:  rt.cfg.OpenAI.APIKey,
		BaseURL: rt.cfg.OpenAI.BaseURL,
		Model:   rt.cfg.OpenAI.STTModel,
	})
	responder := reasoning.NewOpenAIResponder(reasoning.OpenAIConfig{
		APIKey:  rt.cfg.OpenAI.APIKey,
		BaseURL: rt.cfg.OpenAI.BaseURL,
		Model:   rt.cfg.OpenAI.ChatModel,
	})
	ttsProvider := tts.NewOpenAITTS(tts.OpenAIConfig{
		APIKey:       rt.cfg.OpenAI.APIKey,
		BaseURL:      rt.cfg.OpenAI.BaseURL,
		Model:        rt.cfg.OpenAI.TTSModel,
		DefaultVoice: rt.cfg.OpenAI.DefaultVoice,
	})

	pipe := pipeline.New(sttProvider, responder, rt.cfg.OpenAI.TranscribeHint)

	voiceH := handlers.NewVoiceHandler(pipe, rt.deck)
	speechH := handlers.NewSpeechHandler(ttsProvider)
	staticH := handlers.NewStaticHandler(rt.cfg.Web.Dir, rt.deck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/process-audio", voiceH.ProcessAudio)
		r.Post("/text-to-speech", speechH.Synthesize)
	})

	r.Get("/", staticH.Index)
	r.Get("/app.js", staticH.AppJS)
	r.Get("/style.css", staticH.StyleCSS)
	r.Get("/slides/{name}", staticH.Slide)

	return r
}
