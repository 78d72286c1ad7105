package tui

import "github.com/goliatone/go-formstep/pkg/model"

// State tracks the values typed into each input and the inline error attached
// to it. It plays the part of the page's input elements.
type State struct {
	values map[model.FieldID]string
	errors map[model.FieldID]string
}

// NewState returns empty state.
func NewState() *State {
	return &State{
		values: make(map[model.FieldID]string),
		errors: make(map[model.FieldID]string),
	}
}

// Value returns the current input value of field.
func (s *State) Value(field model.FieldID) string {
	if s == nil {
		return ""
	}
	return s.values[field]
}

// SetValue writes the input value of field.
func (s *State) SetValue(field model.FieldID, value string) {
	s.values[field] = value
}

// Error returns the inline error of field, if any.
func (s *State) Error(field model.FieldID) (string, bool) {
	if s == nil {
		return "", false
	}
	msg, ok := s.errors[field]
	return msg, ok
}

// SetError replaces the inline error of field; errors never stack.
func (s *State) SetError(field model.FieldID, message string) {
	s.errors[field] = message
}

// ClearError removes the inline error of field.
func (s *State) ClearError(field model.FieldID) {
	delete(s.errors, field)
}
