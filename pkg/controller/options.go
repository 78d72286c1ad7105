package controller

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/validation"
)

// DefaultAcknowledgement is shown after a successful submission.
const DefaultAcknowledgement = "Form submitted successfully!"

// Option configures a Controller.
type Option func(*Controller)

// WithKey overrides the storage key the record lives under.
func WithKey(key string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			c.key = trimmed
		}
	}
}

// WithSteps replaces the step sequence.
func WithSteps(steps []model.Step) Option {
	return func(c *Controller) {
		if len(steps) > 0 {
			c.steps = model.CloneSteps(steps)
		}
	}
}

// WithValidator swaps the validator, typically to pin the clock in tests.
func WithValidator(v *validation.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithLogger attaches a logger for transition traces.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAcknowledgement overrides the submission message.
func WithAcknowledgement(message string) Option {
	return func(c *Controller) {
		if message != "" {
			c.ack = message
		}
	}
}
