package controller

import "errors"

var (
	// ErrAtFirstStep is returned when going back from the first step.
	ErrAtFirstStep = errors.New("controller: already at first step")
	// ErrAtLastStep is returned when advancing from the last step.
	ErrAtLastStep = errors.New("controller: already at last step")
	// ErrNotOnSubmitStep is returned when submitting before the review step.
	ErrNotOnSubmitStep = errors.New("controller: submit is only available on the final step")
	// ErrSubmitted is returned for any navigation after submission.
	ErrSubmitted = errors.New("controller: form already submitted")
	// ErrStaleAction is returned when an action belongs to a step other than
	// the active one.
	ErrStaleAction = errors.New("controller: action does not belong to the active step")
	// ErrStepOutOfRange is returned for step indices outside the sequence.
	ErrStepOutOfRange = errors.New("controller: step index out of range")
	// ErrUnknownAction is returned by Handlers.Dispatch for unregistered ids.
	ErrUnknownAction = errors.New("controller: unknown action")
)
