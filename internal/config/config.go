package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress string

	// Speech synthesis
	DeepgramAPIKey string
	DeepgramModel  string
	SpeechLocale   string

	// Document storage
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string
}

// Load reads environment variables and returns Config with sane defaults.
// Missing credentials degrade features rather than failing startup: no
// synthesis key means text-only sessions, no storage credentials mean
// uploads are validated but not persisted.
func Load(logger *zap.Logger) Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	deepgramKey := os.Getenv("DEEPGRAM_API_KEY")
	if deepgramKey == "" {
		logger.Warn("DEEPGRAM_API_KEY not set, sessions run text-only")
	}
	deepgramModel := os.Getenv("DEEPGRAM_TTS_MODEL")

	locale := os.Getenv("SPEECH_LOCALE")
	if locale == "" {
		locale = "es-ES"
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		logger.Warn("supabase credentials not set, uploads will not be persisted")
	}
	bucket := os.Getenv("SUPABASE_BUCKET")
	if bucket == "" {
		bucket = "company-documents"
	}

	logger.Info("config loaded",
		zap.String("http_address", addr),
		zap.String("speech_locale", locale),
	)
	return Config{
		HTTPAddress:        addr,
		DeepgramAPIKey:     deepgramKey,
		DeepgramModel:      deepgramModel,
		SpeechLocale:       locale,
		SupabaseURL:        supabaseURL,
		SupabaseServiceKey: supabaseKey,
		SupabaseBucket:     bucket,
	}
}
