package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("SPEECH_LOCALE", "")
	t.Setenv("SUPABASE_BUCKET", "")

	cfg := Load(zap.NewNop())

	assert.Equal(t, ":8080", cfg.HTTPAddress)
	assert.Equal(t, "es-ES", cfg.SpeechLocale)
	assert.Equal(t, "company-documents", cfg.SupabaseBucket)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("SPEECH_LOCALE", "es-CO")
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("DEEPGRAM_TTS_MODEL", "aura-2-celeste-es")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("SUPABASE_BUCKET", "docs")

	cfg := Load(zap.NewNop())

	assert.Equal(t, ":9999", cfg.HTTPAddress)
	assert.Equal(t, "es-CO", cfg.SpeechLocale)
	assert.Equal(t, "dg-key", cfg.DeepgramAPIKey)
	assert.Equal(t, "aura-2-celeste-es", cfg.DeepgramModel)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "service-key", cfg.SupabaseServiceKey)
	assert.Equal(t, "docs", cfg.SupabaseBucket)
}
