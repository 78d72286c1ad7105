package model

// ActionID identifies a navigation control (button or form submission).
type ActionID string

const (
	ActionNext1  ActionID = "next-1"
	ActionNext2  ActionID = "next-2"
	ActionBack2  ActionID = "back-2"
	ActionBack3  ActionID = "back-3"
	ActionSubmit ActionID = "multi-step-form"
)

// SummaryID is the element id of the review panel.
const SummaryID = "summary"

// Step describes one panel of the form. Next, Back and Submit are empty when
// the panel offers no such control.
type Step struct {
	Index   int       `json:"index"`
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Fields  []FieldID `json:"fields,omitempty"`
	Next    ActionID  `json:"next,omitempty"`
	Back    ActionID  `json:"back,omitempty"`
	Submit  ActionID  `json:"submit,omitempty"`
	Summary bool      `json:"summary,omitempty"`
}

// Actions lists the controls shown on the step in the order back, next, submit.
func (s Step) Actions() []ActionID {
	var out []ActionID
	for _, action := range []ActionID{s.Back, s.Next, s.Submit} {
		if action != "" {
			out = append(out, action)
		}
	}
	return out
}

// Has reports whether action belongs to the step.
func (s Step) Has(action ActionID) bool {
	if action == "" {
		return false
	}
	return s.Next == action || s.Back == action || s.Submit == action
}

// DefaultSteps returns the three-panel sequence: personal details, contact
// details and review.
func DefaultSteps() []Step {
	return []Step{
		{
			Index:  0,
			ID:     "step-1",
			Title:  "Personal details",
			Fields: []FieldID{FieldName, FieldDOB, FieldGender},
			Next:   ActionNext1,
		},
		{
			Index:  1,
			ID:     "step-2",
			Title:  "Contact details",
			Fields: []FieldID{FieldEmail, FieldPhone, FieldAddress},
			Next:   ActionNext2,
			Back:   ActionBack2,
		},
		{
			Index:   2,
			ID:      "step-3",
			Title:   "Review",
			Back:    ActionBack3,
			Submit:  ActionSubmit,
			Summary: true,
		},
	}
}

// CloneSteps returns a deep copy so callers can decorate steps without
// mutating shared slices.
func CloneSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, step := range steps {
		out[i] = step
		out[i].Fields = append([]FieldID(nil), step.Fields...)
	}
	return out
}
