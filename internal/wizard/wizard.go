// Package wizard sequences the fixed registration script: a forward-only
// list of named steps plus the nested question queue used inside the
// question step. It holds no UI or voice concern of its own; step entry
// actions are delegated to a Script implementation.
package wizard

// Step is one stage of the guided registration flow.
type Step string

const (
	StepWelcome       Step = "welcome"
	StepUploadExtract Step = "upload_and_extract"
	StepQuestions     Step = "question_answers"
	StepSummary       Step = "summary_confirm"
)

// Steps is the fixed order of the flow. Transitions are strictly forward,
// one at a time, no loops and no skipping.
var Steps = []Step{StepWelcome, StepUploadExtract, StepQuestions, StepSummary}

// Script receives step entry actions.
type Script interface {
	EnterStep(s Step)
}

// Flow walks the fixed step list. It is not safe for concurrent use; the
// owning session serializes all calls.
type Flow struct {
	script  Script
	cursor  int
	started bool
}

// NewFlow returns a flow positioned before the first step.
func NewFlow(script Script) *Flow {
	return &Flow{script: script}
}

// Start resets the cursor and enters the first step.
func (f *Flow) Start() {
	f.cursor = 0
	f.started = true
	f.script.EnterStep(Steps[f.cursor])
}

// Advance moves to the next step and enters it. Past the last step it is a
// silent no-op: the cursor stays put and no entry action runs.
func (f *Flow) Advance() {
	if !f.started || f.cursor >= len(Steps) {
		return
	}
	f.cursor++
	if f.cursor < len(Steps) {
		f.script.EnterStep(Steps[f.cursor])
	}
}

// Current returns the active step; ok is false before Start and after the
// flow has run past the last step.
func (f *Flow) Current() (Step, bool) {
	if !f.started || f.cursor >= len(Steps) {
		return "", false
	}
	return Steps[f.cursor], true
}

// Done reports whether the flow advanced past the final step.
func (f *Flow) Done() bool {
	return f.started && f.cursor >= len(Steps)
}
