package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSelectVoice_LocaleMatch(t *testing.T) {
	voices := DefaultVoices()

	v, ok := SelectVoice(voices, "es-CO")
	require.True(t, ok)
	assert.Equal(t, "aura-2-celeste-es", v.Model)

	// Any Spanish locale lands on the first Spanish voice.
	v, ok = SelectVoice(voices, "es-AR")
	require.True(t, ok)
	assert.Equal(t, "es-CO", v.Locale)

	v, ok = SelectVoice(voices, "en-GB")
	require.True(t, ok)
	assert.Equal(t, "aura-2-thalia-en", v.Model)
}

func TestSelectVoice_FallsBackToFirst(t *testing.T) {
	v, ok := SelectVoice(DefaultVoices(), "fr-FR")
	require.True(t, ok)
	assert.Equal(t, DefaultVoices()[0], v)

	_, ok = SelectVoice(nil, "es-CO")
	assert.False(t, ok)
}

func TestErrorNotice_KnownCodes(t *testing.T) {
	cases := map[string]string{
		ErrCodeNoSpeech:     "No se detectó voz. Por favor, habla más cerca del micrófono.",
		ErrCodeAudioCapture: "Error al capturar audio. Verifica tu micrófono.",
		ErrCodeNotAllowed:   "Permiso denegado para usar el micrófono.",
		ErrCodeNetwork:      "Error de red. Verifica tu conexión.",
		"aborted":           "Error en el reconocimiento de voz",
	}
	for code, want := range cases {
		assert.Equal(t, want, ErrorNotice(code), "code %s", code)
	}
}

func TestNew_NoKeyYieldsNop(t *testing.T) {
	s := New("", "", "es-CO", nil, nil, zap.NewNop())
	_, ok := s.(Nop)
	assert.True(t, ok, "expected degraded-mode synthesizer without an API key")
	// Degraded mode must be inert and safe to call.
	s.Speak(context.Background(), "hola")
	s.Cancel()
}

func TestNew_KeyYieldsDeepgramWithResolvedModel(t *testing.T) {
	s := New("key", "", "es-CO", nil, nil, zap.NewNop())
	d, ok := s.(*Deepgram)
	require.True(t, ok)
	assert.Equal(t, "aura-2-celeste-es", d.model)
}

func TestDeepgram_CancelWithoutUtteranceIsIdempotent(t *testing.T) {
	d := NewDeepgram("key", "aura-2-celeste-es", nil, nil, zap.NewNop())
	d.Cancel()
	d.Cancel()
}
