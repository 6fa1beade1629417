package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScript struct {
	entered []Step
}

func (r *recordingScript) EnterStep(s Step) { r.entered = append(r.entered, s) }

func TestFlow_WalksStepsInOrder(t *testing.T) {
	rec := &recordingScript{}
	f := NewFlow(rec)

	f.Start()
	f.Advance()
	f.Advance()
	f.Advance()

	assert.Equal(t, []Step{StepWelcome, StepUploadExtract, StepQuestions, StepSummary}, rec.entered)
	cur, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, StepSummary, cur)
}

func TestFlow_AdvancePastTerminalIsNoOp(t *testing.T) {
	rec := &recordingScript{}
	f := NewFlow(rec)
	f.Start()
	for i := 0; i < 10; i++ {
		f.Advance()
	}
	// Exactly one entry per step, no re-entry after the end.
	assert.Len(t, rec.entered, len(Steps))
	assert.True(t, f.Done())
	_, ok := f.Current()
	assert.False(t, ok)
}

func TestFlow_AdvanceBeforeStartIsNoOp(t *testing.T) {
	rec := &recordingScript{}
	f := NewFlow(rec)
	f.Advance()
	assert.Empty(t, rec.entered)
	_, ok := f.Current()
	assert.False(t, ok)
}

func TestSequencer_AsksInOrderAndFinishesOnce(t *testing.T) {
	qs := DefaultQuestions()
	var asked []string
	doneCalls := 0
	s := NewSequencer(qs, func(q Question) { asked = append(asked, q.Field) }, func() { doneCalls++ })

	// N answers exhaust the queue; the following AskNext triggers done once.
	for range qs {
		s.AskNext()
		s.MarkAnswered()
	}
	s.AskNext()

	require.Len(t, asked, len(qs))
	for i, q := range qs {
		assert.Equal(t, q.Field, asked[i])
	}
	assert.Equal(t, 1, doneCalls)
}

func TestSequencer_CursorAdvancesPerAnswer(t *testing.T) {
	s := NewSequencer(DefaultQuestions(), func(Question) {}, func() {})
	assert.Equal(t, 0, s.Cursor())
	s.MarkAnswered()
	assert.Equal(t, 1, s.Cursor())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "city", q.Field)
}

func TestDefaultQuestions_NoFieldAskedTwice(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range DefaultQuestions() {
		assert.False(t, seen[q.Field], "field %q asked twice", q.Field)
		seen[q.Field] = true
		assert.NotEmpty(t, q.Prompt)
	}
}
