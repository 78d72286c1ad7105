package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-formstep/pkg/controller"
	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/uischema"
)

const quitLabel = "Quit (keep progress)"

// Session is the terminal front end: it stands in for the page, holding the
// input values, showing one step at a time and turning menu choices into
// controller actions.
type Session struct {
	driver PromptDriver
	layout *uischema.Layout
	out    io.Writer
	theme  Theme
	styles Styles

	handlers controller.Handlers
	state    *State
	ack      string
}

var (
	_ controller.View        = (*Session)(nil)
	_ controller.EventSource = (*Session)(nil)
)

// New constructs a session with defaults (survey driver, stdout, default layout).
func New(options ...Option) *Session {
	s := &Session{
		driver:   NewSurveyDriver(),
		layout:   uischema.Default(),
		out:      os.Stdout,
		theme:    DefaultTheme(),
		styles:   DefaultStyles(),
		handlers: controller.Handlers{},
		state:    NewState(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run binds the controller, initialises it and loops until the form is
// submitted or the user quits. Quitting returns nil; the record saved so far
// stays in storage.
func (s *Session) Run(ctx context.Context, ctrl *controller.Controller) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if ctrl == nil {
		return ErrNoController
	}

	ctrl.Bind(s)
	if err := ctrl.Initialize(ctx); err != nil {
		return err
	}

	for !ctrl.Submitted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := ctrl.Step()
		if err := s.promptStep(ctx, step); err != nil {
			return err
		}

		action, quit, err := s.chooseAction(ctx, step)
		if err != nil {
			return err
		}
		if quit {
			s.info(ctx, s.styles.Muted.Render(s.theme.InfoPrefix+" Completed steps are saved. Run again to continue."))
			return nil
		}
		if action == step.Submit {
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit the form?", Default: true})
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		if err := s.handlers.Dispatch(ctx, action); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptStep(ctx context.Context, step model.Step) error {
	for _, field := range step.Fields {
		if err := s.promptField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, field model.FieldID) error {
	cfg := s.layout.Field(field)
	if msg, ok := s.state.Error(field); ok {
		s.info(ctx, s.styles.Error.Render(fmt.Sprintf("%s %s: %s", s.theme.ErrorPrefix, cfg.Label, msg)))
	}

	current := s.state.Value(field)
	if len(cfg.Options) > 0 {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      cfg.Label,
			Options:      cfg.Options,
			DefaultIndex: indexOf(cfg.Options, current),
			Help:         cfg.HelpText,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(cfg.Options) {
			s.state.SetValue(field, "")
			return nil
		}
		s.state.SetValue(field, cfg.Options[idx])
		return nil
	}

	value, err := s.driver.Input(ctx, InputConfig{
		Message: cfg.Label,
		Default: current,
		Help:    helpFor(cfg),
	})
	if err != nil {
		return err
	}
	s.state.SetValue(field, value)
	return nil
}

func helpFor(cfg uischema.FieldConfig) string {
	switch {
	case cfg.HelpText != "" && cfg.Placeholder != "":
		return cfg.HelpText + " (e.g. " + cfg.Placeholder + ")"
	case cfg.HelpText != "":
		return cfg.HelpText
	case cfg.Placeholder != "":
		return "e.g. " + cfg.Placeholder
	default:
		return ""
	}
}

func (s *Session) chooseAction(ctx context.Context, step model.Step) (model.ActionID, bool, error) {
	actions := step.Actions()
	labels := make([]string, 0, len(actions)+1)
	defaultIdx := 0
	for i, action := range actions {
		labels = append(labels, actionLabel(step, action))
		if action == step.Next || action == step.Submit {
			defaultIdx = i
		}
	}
	labels = append(labels, quitLabel)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Continue",
		Options:      labels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(actions) {
		return "", true, nil
	}
	return actions[idx], false, nil
}

func actionLabel(step model.Step, action model.ActionID) string {
	switch action {
	case step.Next:
		return "Next"
	case step.Back:
		return "Back"
	case step.Submit:
		return "Submit"
	default:
		return string(action)
	}
}

func (s *Session) info(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, msg)
}

// On implements controller.EventSource.
func (s *Session) On(action model.ActionID, handler controller.Handler) {
	s.handlers.On(action, handler)
}

// ShowStep prints the step header.
func (s *Session) ShowStep(step model.Step) {
	title := s.layout.StepTitle(step)
	fmt.Fprintln(s.out, s.styles.Title.Render(fmt.Sprintf("%s Step %d: %s", s.theme.StepPrefix, step.Index+1, title)))
}

// FieldValue returns what was last typed for field.
func (s *Session) FieldValue(field model.FieldID) string {
	return s.state.Value(field)
}

// SetFieldValue prefills field.
func (s *Session) SetFieldValue(field model.FieldID, value string) {
	s.state.SetValue(field, value)
}

// MarkInvalid records an error that is shown when the field is prompted again.
func (s *Session) MarkInvalid(field model.FieldID, message string) {
	s.state.SetError(field, message)
}

// ClearInvalid drops the error recorded for field.
func (s *Session) ClearInvalid(field model.FieldID) {
	s.state.ClearError(field)
}

// RenderSummary prints the review box.
func (s *Session) RenderSummary(summary model.Summary) {
	fmt.Fprintln(s.out, RenderSummary(s.labelled(summary), s.styles))
}

// Acknowledge prints the completion notice.
func (s *Session) Acknowledge(message string) {
	s.ack = message
	fmt.Fprintln(s.out, s.styles.Success.Render(message))
}

// Acknowledged returns the last completion notice shown.
func (s *Session) Acknowledged() string {
	return s.ack
}

// State exposes the input values, mainly for tests.
func (s *Session) State() *State {
	return s.state
}

func (s *Session) labelled(summary model.Summary) model.Summary {
	out := make(model.Summary, len(summary))
	for i, item := range summary {
		item.Label = s.layout.Field(item.Field).Label
		out[i] = item
	}
	return out
}
