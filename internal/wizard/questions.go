package wizard

import "vozbot/internal/form"

// Question pairs a form field with its spoken prompt.
type Question struct {
	Field  string
	Prompt string
}

// DefaultQuestions is the fixed queue asked during the question step, in
// asking order.
func DefaultQuestions() []Question {
	return []Question{
		{form.FieldDepartment, "¿En qué departamento se encuentra tu empresa?"},
		{form.FieldCity, "¿En qué ciudad se encuentra tu empresa?"},
		{form.FieldCategory, "¿A qué categoría pertenece tu empresa? (Restaurante, Comercio, Servicios)"},
		{form.FieldEconomicActivity, "¿Cuál es la actividad económica principal de tu empresa?"},
		{form.FieldCIIUCode, "¿Cuál es el código CIIU de tu empresa?"},
	}
}

// Sequencer asks a fixed list of questions one at a time. ask runs for each
// question in order; done runs exactly once, when AskNext is called after
// the last answer was recorded.
type Sequencer struct {
	questions []Question
	cursor    int
	ask       func(Question)
	done      func()
}

// NewSequencer builds a sequencer positioned at the first question.
func NewSequencer(questions []Question, ask func(Question), done func()) *Sequencer {
	return &Sequencer{questions: questions, ask: ask, done: done}
}

// AskNext emits the current question, or delegates to done when the queue
// is exhausted.
func (s *Sequencer) AskNext() {
	if s.cursor < len(s.questions) {
		s.ask(s.questions[s.cursor])
		return
	}
	s.done()
}

// Current returns the question awaiting an answer.
func (s *Sequencer) Current() (Question, bool) {
	if s.cursor >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.cursor], true
}

// MarkAnswered advances past the current question. Each question is
// answered at most once per pass.
func (s *Sequencer) MarkAnswered() {
	if s.cursor < len(s.questions) {
		s.cursor++
	}
}

// Cursor reports the index of the question awaiting an answer.
func (s *Sequencer) Cursor() int { return s.cursor }
