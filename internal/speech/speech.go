// Package speech holds the voice I/O contracts: speech synthesis with
// at-most-one utterance in flight, voice selection by locale, and the fixed
// taxonomy of recognition errors surfaced by the browser speech engine.
// Capture and recognition themselves run client-side; this package only
// classifies their events and produces the assistant's audio.
package speech

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Status reports synthesis lifecycle transitions for one utterance.
type Status string

const (
	StatusStarted Status = "started"
	StatusEnded   Status = "ended"
)

// Synthesizer converts assistant text into audible speech. Implementations
// keep at most one utterance in flight: Speak cancels any previous one
// before starting, and Cancel is idempotent.
type Synthesizer interface {
	Speak(ctx context.Context, text string)
	Cancel()
}

// AudioSink receives synthesized audio frames for delivery to the client.
type AudioSink interface {
	WriteAudio(frame []byte)
}

// Nop is the degraded-mode synthesizer used when no synthesis capability is
// configured. Messages still reach the user through the transcript log.
type Nop struct{}

func (Nop) Speak(context.Context, string) {}
func (Nop) Cancel()                       {}

// Voice describes an available synthesis voice.
type Voice struct {
	Model  string
	Locale string
}

// DefaultVoices are the synthesis voices the service knows how to request,
// in preference order.
func DefaultVoices() []Voice {
	return []Voice{
		{"aura-2-celeste-es", "es-CO"},
		{"aura-2-diana-es", "es-ES"},
		{"aura-2-estrella-es", "es-MX"},
		{"aura-2-thalia-en", "en-US"},
	}
}

// SelectVoice returns the first voice whose locale shares the target's
// primary language subtag, falling back to the first available voice.
func SelectVoice(voices []Voice, locale string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	lang := strings.ToLower(strings.SplitN(locale, "-", 2)[0])
	if lang != "" {
		for _, v := range voices {
			if strings.HasPrefix(strings.ToLower(v.Locale), lang) {
				return v, true
			}
		}
	}
	return voices[0], true
}

// Recognition error codes delivered by the browser speech engine.
const (
	ErrCodeNoSpeech     = "no-speech"
	ErrCodeAudioCapture = "audio-capture"
	ErrCodeNotAllowed   = "not-allowed"
	ErrCodeNetwork      = "network"
)

// ErrorNotice maps a recognition error code to the Spanish notice shown to
// the user. Unknown codes get the generic message. No recognition error is
// fatal; the session can restart listening afterwards.
func ErrorNotice(code string) string {
	switch code {
	case ErrCodeNoSpeech:
		return "No se detectó voz. Por favor, habla más cerca del micrófono."
	case ErrCodeAudioCapture:
		return "Error al capturar audio. Verifica tu micrófono."
	case ErrCodeNotAllowed:
		return "Permiso denegado para usar el micrófono."
	case ErrCodeNetwork:
		return "Error de red. Verifica tu conexión."
	default:
		return "Error en el reconocimiento de voz"
	}
}

// New returns a Deepgram-backed synthesizer when an API key is configured,
// otherwise the no-op synthesizer (text-only degraded mode). An empty model
// is resolved from the locale against DefaultVoices.
func New(apiKey, model, locale string, sink AudioSink, onStatus func(Status), logger *zap.Logger) Synthesizer {
	if apiKey == "" {
		logger.Warn("no synthesis API key configured, running text-only")
		return Nop{}
	}
	if model == "" {
		v, _ := SelectVoice(DefaultVoices(), locale)
		model = v.Model
	}
	return NewDeepgram(apiKey, model, sink, onStatus, logger)
}
