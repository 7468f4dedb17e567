package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	OpenAI OpenAIConfig
	Deck   DeckConfig
	Web    WebConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	RateLimitRPS   float64 // sustained requests per second per client IP
	RateLimitBurst int     // burst allowance per client IP
}

type OpenAIConfig struct {
	APIKey         string
	BaseURL        string // override for compatible endpoints; empty = api.openai.com
	STTModel       string
	ChatModel      string
	TTSModel       string
	DefaultVoice   string
	TranscribeHint string // prompt passed to the transcription model
}

type DeckConfig struct {
	Dir string // directory of slide images, served in file-name order
}

type WebConfig struct {
	Dir            string // static assets (index.html, app.js, style.css)
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env if present; a missing file is not an error.
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	rps, err := getEnvFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			STTModel:       getEnv("STT_MODEL", "gpt-4o-transcribe"),
			ChatModel:      getEnv("CHAT_MODEL", "gpt-4.1-mini"),
			TTSModel:       getEnv("TTS_MODEL", "gpt-4o-mini-tts"),
			DefaultVoice:   getEnv("TTS_DEFAULT_VOICE", "alloy"),
			TranscribeHint: getEnv("STT_PROMPT", "Transcribe the audio to english text only"),
		},
		Deck: DeckConfig{
			Dir: getEnv("SLIDES_DIR", "slides"),
		},
		Web: WebConfig{
			Dir:            getEnv("WEB_DIR", "web"),
			AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "*")),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
