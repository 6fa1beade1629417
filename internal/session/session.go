// Package session orchestrates one voice registration conversation: it owns
// the slot store, the transcript log and the wizard flow, and bridges them
// to the presentation layer and the speech synthesizer. All state mutation
// is serialized on the session mutex; external events (recognition results,
// UI gestures, timers) enter through the Handle* methods.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"vozbot/internal/extract"
	"vozbot/internal/form"
	"vozbot/internal/notify"
	"vozbot/internal/speech"
	"vozbot/internal/transcript"
	"vozbot/internal/wizard"
)

// Action identifies a deferred user gesture offered in the conversation.
type Action string

const (
	// ActionExtract runs the document extraction; offered once during the
	// upload step and consumed on first use.
	ActionExtract Action = "extract"
	// ActionConfirm applies the canonical field set from the summary.
	ActionConfirm Action = "confirm"
	// ActionModify asks which field the user wants to change.
	ActionModify Action = "modify"
	// ActionInterrupt stops the in-flight assistant utterance.
	ActionInterrupt Action = "interrupt"
)

// UI status indicator values.
const (
	StatusIdle      = "idle"
	StatusListening = "listening"
	StatusSpeaking  = "speaking"
)

// Presenter is the narrow surface the session uses to drive the client UI.
// Implementations only render; they never mutate session state.
type Presenter interface {
	RenderMessage(e transcript.Entry)
	ShowCaption(text string)
	Highlight(id string)
	SetFieldValue(name, value string)
	ShowNotice(kind notify.Kind, text string)
	OfferAction(action, label string)
	SetStatus(status string)
}

// Delays pace the scripted wizard. They model "wait for the spoken prompt to
// finish" and "let the confirmation be perceived"; they are not retries.
type Delays struct {
	WelcomeAdvance time.Duration
	ExtractFill    time.Duration
	ExtractAdvance time.Duration
	NextQuestion   time.Duration
}

// DefaultDelays returns the production pacing.
func DefaultDelays() Delays {
	return Delays{
		WelcomeAdvance: 8 * time.Second,
		ExtractFill:    2 * time.Second,
		ExtractAdvance: 3 * time.Second,
		NextQuestion:   2 * time.Second,
	}
}

// Config carries the collaborators for one session.
type Config struct {
	ID        string
	Presenter Presenter
	Synth     speech.Synthesizer
	Logger    *zap.Logger
	Delays    Delays
}

// Session is one live voice registration conversation.
type Session struct {
	id        string
	presenter Presenter
	synth     speech.Synthesizer
	logger    *zap.Logger
	delays    Delays

	ctx       context.Context
	ctxCancel context.CancelFunc

	mu             sync.Mutex
	store          *form.Store
	log            *transcript.Log
	flow           *wizard.Flow
	seq            *wizard.Sequencer
	sched          *scheduler
	micEnabled     bool
	listening      bool
	closed         bool
	pendingExtract bool
}

// New builds a session. Zero-value delays get the production defaults; a
// nil synthesizer degrades to text-only.
func New(cfg Config) *Session {
	if cfg.Synth == nil {
		cfg.Synth = speech.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger, _ = zap.NewProduction()
	}
	if cfg.Delays == (Delays{}) {
		cfg.Delays = DefaultDelays()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:         cfg.ID,
		presenter:  cfg.Presenter,
		synth:      cfg.Synth,
		logger:     cfg.Logger.With(zap.String("session", cfg.ID)),
		delays:     cfg.Delays,
		ctx:        ctx,
		ctxCancel:  cancel,
		store:      form.NewStore(),
		log:        transcript.NewLog(),
		sched:      newScheduler(),
		micEnabled: true,
	}
	s.flow = wizard.NewFlow(s)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Store exposes the slot store for read access (summary, tests).
func (s *Session) Store() *form.Store { return s.store }

// Transcript exposes the conversation log for read access.
func (s *Session) Transcript() *transcript.Log { return s.log }

// UseSynthesizer swaps the speech output. Intended for wiring right after
// construction, before Start.
func (s *Session) UseSynthesizer(synth speech.Synthesizer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if synth == nil {
		synth = speech.Nop{}
	}
	s.synth = synth
}

// Start seeds the store with the client's initial form values and begins
// the wizard at the welcome step.
func (s *Session) Start(initialFields map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.store.Seed(initialFields)
	s.flow.Start()
}

// EnterStep runs a step's entry script. Invoked by the wizard flow, always
// with the session mutex held.
func (s *Session) EnterStep(step wizard.Step) {
	s.logger.Info("entering step", zap.String("step", string(step)))
	switch step {
	case wizard.StepWelcome:
		s.say(welcomeMessage)
		s.sched.After(s.delays.WelcomeAdvance, s.lockedAdvance)
	case wizard.StepUploadExtract:
		s.say(uploadMessage)
		s.presenter.Highlight("logoPlaceholder")
		s.presenter.Highlight("document-grid")
		s.pendingExtract = true
		s.presenter.OfferAction(string(ActionExtract), "Extraer información")
	case wizard.StepQuestions:
		s.say(questionIntro)
		s.seq = wizard.NewSequencer(wizard.DefaultQuestions(), s.askQuestion, s.flow.Advance)
		s.seq.AskNext()
	case wizard.StepSummary:
		s.seq = nil
		s.say(form.Summary(s.store.Snapshot()))
		s.presenter.OfferAction(string(ActionConfirm), "Apply")
		s.presenter.OfferAction(string(ActionModify), "Modificar datos")
	}
}

// HandleInterim shows a live caption for a partial recognition result.
func (s *Session) HandleInterim(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.presenter.ShowCaption(text)
}

// HandleFinal processes a committed recognition result. Inside the question
// step it answers the pending question; elsewhere it runs the open
// conversation pipeline. Consecutive finals are processed in arrival order.
func (s *Session) HandleFinal(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || strings.TrimSpace(text) == "" {
		return
	}
	s.presenter.ShowCaption(text)

	if step, ok := s.flow.Current(); ok && step == wizard.StepQuestions && s.seq != nil {
		if q, qok := s.seq.Current(); qok {
			s.submitAnswer(q, text)
			return
		}
	}
	s.processOpenInput(text)
}

// HandleAction dispatches a deferred UI gesture.
func (s *Session) HandleAction(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	switch a {
	case ActionExtract:
		// One-shot: the offer is consumed on first use.
		if !s.pendingExtract {
			return
		}
		s.pendingExtract = false
		s.runExtraction()
	case ActionConfirm:
		if step, ok := s.flow.Current(); ok && step == wizard.StepSummary {
			s.confirmAndFill()
		}
	case ActionModify:
		if step, ok := s.flow.Current(); ok && step == wizard.StepSummary {
			s.say(reviewMessage)
		}
	case ActionInterrupt:
		s.synth.Cancel()
	}
}

// HandleFieldInput mirrors a value the user typed directly into the form.
func (s *Session) HandleFieldInput(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !form.Known(name) {
		return
	}
	s.store.Set(name, value)
}

// SetMicrophone toggles capture availability. Disabling also stops
// listening.
func (s *Session) SetMicrophone(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.micEnabled = enabled
	if !enabled && s.listening {
		s.listening = false
		s.presenter.SetStatus(StatusIdle)
	}
}

// StartListening marks recognition active. No-op while the microphone is
// user-disabled.
func (s *Session) StartListening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.micEnabled {
		return
	}
	s.listening = true
	s.presenter.SetStatus(StatusListening)
	s.presenter.ShowCaption("Escuchando...")
}

// StopListening marks recognition inactive.
func (s *Session) StopListening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.listening = false
	s.presenter.SetStatus(StatusIdle)
}

// HandleSpeechError surfaces a recognition failure as a notice. The
// recognition session ends but may be restarted; nothing here is fatal.
func (s *Session) HandleSpeechError(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.logger.Warn("speech recognition error", zap.String("code", code))
	s.listening = false
	s.presenter.SetStatus(StatusIdle)
	s.presenter.ShowNotice(notify.Error, speech.ErrorNotice(code))
}

// HandleSpeechStatus relays synthesis lifecycle changes to the indicator.
func (s *Session) HandleSpeechStatus(st speech.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	switch st {
	case speech.StatusStarted:
		s.presenter.SetStatus(StatusSpeaking)
	case speech.StatusEnded:
		s.presenter.SetStatus(StatusIdle)
	}
}

// Close ends the session: stops listening and speaking, cancels every
// pending scheduled advance and clears the transcript.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.listening = false
	s.sched.StopAll()
	s.ctxCancel()
	s.synth.Cancel()
	s.log.Clear()
	s.logger.Info("session closed")
}

// lockedAdvance is the scheduled form of flow.Advance.
func (s *Session) lockedAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.flow.Advance()
}

// say logs and renders an assistant message, then speaks it. When synthesis
// is unavailable the text channel alone carries the message.
func (s *Session) say(text string) {
	s.appendEntry(transcript.RoleAssistant, text)
	s.synth.Speak(s.ctx, text)
}

func (s *Session) appendEntry(role transcript.Role, text string) {
	e := s.log.Append(role, text)
	s.presenter.RenderMessage(e)
}

func (s *Session) askQuestion(q wizard.Question) {
	s.say(q.Prompt)
	s.presenter.Highlight(q.Field)
}

// submitAnswer captures the reply to the pending question and schedules the
// next one after the confirmation has been perceived.
func (s *Session) submitAnswer(q wizard.Question, raw string) {
	value := extract.Answer(q.Field, raw)
	s.appendEntry(transcript.RoleUser, raw)
	s.store.Set(q.Field, value)
	s.say(`✅ Guardado: "` + value + `"`)
	s.seq.MarkAnswered()
	s.sched.After(s.delays.NextQuestion, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.seq == nil {
			return
		}
		s.seq.AskNext()
	})
}

// runExtraction performs the two-phase scripted document extraction: announce
// the values, populate the form after a pause, then advance.
func (s *Session) runExtraction() {
	s.say(extractMessage)
	s.sched.After(s.delays.ExtractFill, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.fillField(form.FieldSocialReason, "Empresa ABC S.A")
		s.fillField(form.FieldDocumentNumber, "900123456")
		s.fillField(form.FieldAddress, "Calle 15 #23-45, Bogotá")
		s.fillField(form.FieldPhone, "324 347 8909")
		s.sched.After(s.delays.ExtractAdvance, s.lockedAdvance)
	})
}

// fillField writes a value to the slot store and the client form, and logs
// the write in the conversation (without speaking it).
func (s *Session) fillField(name, value string) {
	s.store.Set(name, value)
	s.presenter.SetFieldValue(name, value)
	s.appendEntry(transcript.RoleAssistant, `He llenado el campo "`+name+`" con "`+value+`".`)
}

// confirmAndFill applies the canonical field set and announces success.
func (s *Session) confirmAndFill() {
	for _, fv := range form.ConfirmValues {
		s.fillField(fv.Name, fv.Value)
	}
	s.say(successMessage)
	s.presenter.Highlight("companyForm")
}

// openConversationFields is the scan order for free-text extraction results.
var openConversationFields = []string{
	form.FieldSocialReason,
	form.FieldAddress,
	form.FieldPhone,
	form.FieldDocumentNumber,
}

// processOpenInput runs the open conversation pipeline: log the utterance,
// produce the scripted reply and harvest any field values mentioned in
// passing. A panic anywhere in the pipeline resolves into a generic error
// notice with the step state unchanged, so the user may simply retry.
func (s *Session) processOpenInput(text string) {
	s.appendEntry(transcript.RoleUser, text)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("open input processing failed", zap.Any("panic", r))
			s.presenter.ShowNotice(notify.Error, processingErrorNotice)
		}
	}()

	input := strings.ToLower(text)
	if step, ok := s.flow.Current(); ok && step == wizard.StepSummary {
		reply, advance := confirmationReply(input)
		s.say(reply)
		if advance {
			s.flow.Advance()
		}
		return
	}

	s.say(openReply(input))
	found := extract.Open(text)
	for _, name := range openConversationFields {
		if value, ok := found[name]; ok {
			s.fillField(name, value)
		}
	}
}
