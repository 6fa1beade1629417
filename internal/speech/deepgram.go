package speech

import (
	"context"
	"sync"
	"time"

	msginterfaces "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/websocket/interfaces"
	clientinterfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces/v1"
	"github.com/deepgram/deepgram-go-sdk/pkg/client/speak"
	"go.uber.org/zap"
)

// Deepgram synthesizes speech through Deepgram's websocket speak API and
// streams the audio frames into the sink. Fixed encoding and sample rate;
// the voice model is chosen once at construction.
type Deepgram struct {
	apiKey     string
	model      string
	sampleRate int
	encoding   string
	sink       AudioSink
	onStatus   func(Status)
	logger     *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewDeepgram builds the adapter. sink and onStatus may be nil.
func NewDeepgram(apiKey, model string, sink AudioSink, onStatus func(Status), logger *zap.Logger) *Deepgram {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Deepgram{
		apiKey:     apiKey,
		model:      model,
		sampleRate: 48000,
		encoding:   "linear16",
		sink:       sink,
		onStatus:   onStatus,
		logger:     logger.With(zap.String("component", "deepgram_tts")),
	}
}

// Speak cancels any in-flight utterance, then synthesizes text in the
// background. It never blocks the caller.
func (d *Deepgram) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	sctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	go d.stream(sctx, cancel, gen, text)
}

// Cancel stops the in-flight utterance, if any. Safe to call repeatedly.
func (d *Deepgram) Cancel() {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (d *Deepgram) emit(s Status) {
	if d.onStatus != nil {
		d.onStatus(s)
	}
}

func (d *Deepgram) stream(ctx context.Context, cancel context.CancelFunc, gen uint64, text string) {
	defer func() {
		d.mu.Lock()
		// A newer utterance may have replaced our registration already.
		if d.gen == gen {
			d.cancel = nil
		}
		d.mu.Unlock()
		cancel()
		d.emit(StatusEnded)
	}()

	options := &clientinterfaces.WSSpeakOptions{
		Model:      d.model,
		Encoding:   d.encoding,
		SampleRate: d.sampleRate,
	}

	var (
		frameMu  sync.Mutex
		lastRecv time.Time
		gotAudio bool
	)

	cb := &speakCallback{onBinary: func(data []byte) error {
		if len(data) == 0 || ctx.Err() != nil {
			return nil
		}
		frameMu.Lock()
		lastRecv = time.Now()
		gotAudio = true
		frameMu.Unlock()
		if d.sink != nil {
			frame := make([]byte, len(data))
			copy(frame, data)
			d.sink.WriteAudio(frame)
		}
		return nil
	}}

	dg, err := speak.NewWSUsingCallback(ctx, d.apiKey, &clientinterfaces.ClientOptions{}, options, cb)
	if err != nil {
		d.logger.Error("create ws client", zap.Error(err))
		return
	}

	stopped := false
	stopClient := func() {
		if !stopped {
			stopped = true
			dg.Stop()
		}
	}
	defer stopClient()

	if ok := dg.Connect(); !ok {
		d.logger.Error("connect failed", zap.String("model", d.model))
		return
	}
	d.emit(StatusStarted)

	if err := dg.SpeakWithText(text); err != nil {
		d.logger.Error("speak text", zap.Error(err))
		return
	}
	if err := dg.Flush(); err != nil {
		d.logger.Warn("flush", zap.Error(err))
	}

	// Drain until the audio stream idles out, the overall deadline passes,
	// or the utterance is cancelled.
	idleWindow := 400 * time.Millisecond
	deadline := time.Now().Add(12 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frameMu.Lock()
			idle := gotAudio && time.Since(lastRecv) > idleWindow
			frameMu.Unlock()
			if idle || time.Now().After(deadline) {
				return
			}
		}
	}
}

type speakCallback struct{ onBinary func([]byte) error }

func (s *speakCallback) Open(*msginterfaces.OpenResponse) error         { return nil }
func (s *speakCallback) Metadata(*msginterfaces.MetadataResponse) error { return nil }
func (s *speakCallback) Flush(*msginterfaces.FlushedResponse) error     { return nil }
func (s *speakCallback) Clear(*msginterfaces.ClearedResponse) error     { return nil }
func (s *speakCallback) Close(*msginterfaces.CloseResponse) error       { return nil }
func (s *speakCallback) Warning(*msginterfaces.WarningResponse) error   { return nil }
func (s *speakCallback) Error(*msginterfaces.ErrorResponse) error       { return nil }
func (s *speakCallback) UnhandledEvent([]byte) error                    { return nil }
func (s *speakCallback) Binary(byMsg []byte) error {
	if s.onBinary != nil {
		return s.onBinary(byMsg)
	}
	return nil
}
