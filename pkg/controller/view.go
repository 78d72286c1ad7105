package controller

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formstep/pkg/model"
)

// View is the display side of the UI boundary.
type View interface {
	// ShowStep makes step the only visible panel.
	ShowStep(step model.Step)
	// FieldValue reads the current value of an input.
	FieldValue(field model.FieldID) string
	// SetFieldValue populates an input.
	SetFieldValue(field model.FieldID, value string)
	// MarkInvalid attaches an inline error and the invalid marker to field.
	// Calling it again for an already marked field must not stack messages.
	MarkInvalid(field model.FieldID, message string)
	// ClearInvalid removes the inline error and the invalid marker.
	ClearInvalid(field model.FieldID)
	// RenderSummary fills the read-only review panel.
	RenderSummary(summary model.Summary)
	// Acknowledge tells the user the form was submitted.
	Acknowledge(message string)
}

// Handler reacts to one user action.
type Handler func(ctx context.Context) error

// EventSource is the input side of the UI boundary: front ends register a
// handler per action id and invoke it when the control is used.
type EventSource interface {
	On(action model.ActionID, handler Handler)
}

// Handlers is a map-backed EventSource front ends can embed.
type Handlers map[model.ActionID]Handler

var _ EventSource = Handlers(nil)

// On registers handler for action, replacing any previous registration.
func (h Handlers) On(action model.ActionID, handler Handler) {
	if action == "" || handler == nil {
		return
	}
	h[action] = handler
}

// Dispatch invokes the handler registered for action.
func (h Handlers) Dispatch(ctx context.Context, action model.ActionID) error {
	handler, ok := h[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return handler(ctx)
}
