package domain

// Session is the step controller for one rendering of a form: a finite
// sequencer over the form's steps plus the accumulated answer map. It
// owns the answers for the session's duration; they are discarded on
// Reset or once a submission succeeds.
//
// Transitions:
//   - Next advances one step and is gated on the current step validating.
//   - Back always goes one step back without re-validating or clearing data.
//   - Submit is only allowed from the last step, and only when it validates.
//
// There is no transition that skips steps.
type Session struct {
	def     FormDefinition
	index   int
	answers map[string]any
	errors  map[string]string
}

// NewSession starts a session at the first step.
func NewSession(def FormDefinition) *Session {
	return &Session{
		def:     def,
		answers: make(map[string]any),
		errors:  make(map[string]string),
	}
}

// SeedHiddenFields pre-fills the form's hidden fields from URL query
// parameters captured at mount (UTM parameters and the like). Unknown
// parameters are ignored.
func (s *Session) SeedHiddenFields(params map[string]string) {
	for _, id := range s.def.HiddenFields {
		if value, ok := params[id]; ok && value != "" {
			s.answers[id] = value
		}
	}
}

// StepIndex returns the current step index.
func (s *Session) StepIndex() int {
	return s.index
}

// CurrentStep returns the step the session is on.
func (s *Session) CurrentStep() Step {
	return s.def.Steps[s.index]
}

// Terminal reports whether the session is on the last step.
func (s *Session) Terminal() bool {
	return s.index == s.def.TerminalIndex()
}

// Set records a field value.
func (s *Session) Set(fieldID string, value any) {
	s.answers[fieldID] = value
}

// Answers returns a copy of the accumulated answer map.
func (s *Session) Answers() map[string]any {
	copied := make(map[string]any, len(s.answers))
	for key, value := range s.answers {
		copied[key] = value
	}
	return copied
}

// Errors returns the current step's field errors from the last failed
// transition attempt.
func (s *Session) Errors() map[string]string {
	return s.errors
}

// Next validates the current step and advances on success. On failure the
// field errors are retained and the index does not move. Advancing clears
// the prior step's error set.
func (s *Session) Next() bool {
	result := ValidateStep(s.CurrentStep(), s.answers)
	if !result.Valid {
		s.errors = result.Errors
		return false
	}

	s.errors = make(map[string]string)
	if !s.Terminal() {
		s.index++
	}
	return true
}

// Back moves one step back. It never validates and never clears entered
// data.
func (s *Session) Back() {
	if s.index > 0 {
		s.index--
	}
}

// CanSubmit reports whether a submission is allowed: the session must be
// on the terminal step and that step must validate. On failure the field
// errors are retained, matching Next.
func (s *Session) CanSubmit() bool {
	if !s.Terminal() {
		return false
	}
	result := ValidateStep(s.CurrentStep(), s.answers)
	if !result.Valid {
		s.errors = result.Errors
		return false
	}
	s.errors = make(map[string]string)
	return true
}

// Reset discards all entered data and returns to the first step.
func (s *Session) Reset() {
	s.index = 0
	s.answers = make(map[string]any)
	s.errors = make(map[string]string)
}
