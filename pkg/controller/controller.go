package controller

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/storage"
	"github.com/goliatone/go-formstep/pkg/validation"
)

// Controller owns the step counter and the in-memory record. It is not safe
// for concurrent use; front ends serialise calls per session.
type Controller struct {
	store     storage.Store
	view      View
	key       string
	steps     []model.Step
	validator *validation.Validator
	logger    *zap.Logger
	ack       string

	current   int
	data      model.FormData
	submitted bool
}

// New wires a controller to its store and view. Call Initialize before use.
func New(store storage.Store, view View, options ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("controller: store is required")
	}
	if view == nil {
		return nil, errors.New("controller: view is required")
	}

	c := &Controller{
		store:     store,
		view:      view,
		key:       storage.DefaultKey,
		steps:     model.DefaultSteps(),
		validator: validation.New(),
		logger:    zap.NewNop(),
		ack:       DefaultAcknowledgement,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	for i, step := range c.steps {
		if step.Index != i {
			return nil, fmt.Errorf("controller: step %q has index %d, want %d", step.ID, step.Index, i)
		}
	}
	return c, nil
}

// Initialize loads the persisted record, falling back to the default record
// when the key is missing or holds undecodable data, then shows the first
// step with every input populated. Only a failing store is reported.
func (c *Controller) Initialize(ctx context.Context) error {
	data, err := storage.LoadRecord(ctx, c.store, c.key)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		data = model.FormData{}
	case errors.Is(err, storage.ErrCorrupt):
		c.logger.Debug("discarding unreadable record", zap.String("key", c.key), zap.Error(err))
		data = model.FormData{}
	default:
		return fmt.Errorf("controller: load record: %w", err)
	}

	c.data = data
	c.current = 0
	c.submitted = false
	if err := c.ShowStep(c.current); err != nil {
		return err
	}
	for _, field := range model.Fields() {
		c.view.SetFieldValue(field, c.data.Get(field))
	}
	c.logger.Debug("form initialised", zap.String("key", c.key), zap.Bool("resumed", !data.Empty()))
	return nil
}

// ShowStep renders the panel at index as the only active one. It does not
// move the step counter.
func (c *Controller) ShowStep(index int) error {
	step, err := c.step(index)
	if err != nil {
		return err
	}
	c.view.ShowStep(step)
	return nil
}

// SaveStepData copies the inputs of the step at index into the record and
// writes the whole record to the store.
func (c *Controller) SaveStepData(ctx context.Context, index int) error {
	step, err := c.step(index)
	if err != nil {
		return err
	}
	next := c.data
	for _, field := range step.Fields {
		next.Set(field, c.view.FieldValue(field))
	}
	if err := storage.SaveRecord(ctx, c.store, c.key, next); err != nil {
		return fmt.Errorf("controller: save step %d: %w", index, err)
	}
	c.data = next
	return nil
}

// ValidateStep applies the field rules of the step at index, annotating each
// field as invalid or clearing a previous annotation, and reports whether
// every field passed. Indices outside the sequence never validate.
func (c *Controller) ValidateStep(index int) bool {
	return c.Validate(index).Valid
}

// Validate is ValidateStep with the individual issues returned.
func (c *Controller) Validate(index int) validation.Result {
	step, err := c.step(index)
	if err != nil {
		return validation.Result{Valid: false}
	}
	result := c.validator.ValidateStep(step, c.view.FieldValue)
	for _, field := range step.Fields {
		if msg, failed := result.MessageFor(field); failed {
			c.view.MarkInvalid(field, msg)
			continue
		}
		c.view.ClearInvalid(field)
	}
	return result
}

// Next validates the active step and, only when it passes, saves it and moves
// forward one step. Landing on the review step renders the summary from the
// in-memory record. The boolean reports whether the step changed.
func (c *Controller) Next(ctx context.Context) (bool, error) {
	if c.submitted {
		return false, ErrSubmitted
	}
	if c.current >= len(c.steps)-1 {
		return false, ErrAtLastStep
	}
	if !c.ValidateStep(c.current) {
		c.logger.Debug("step blocked by validation", zap.Int("step", c.current))
		return false, nil
	}
	if err := c.SaveStepData(ctx, c.current); err != nil {
		return false, err
	}

	c.current++
	if err := c.ShowStep(c.current); err != nil {
		return false, err
	}
	if step := c.steps[c.current]; step.Summary {
		c.view.RenderSummary(c.data.Summary())
	}
	c.logger.Debug("advanced", zap.Int("step", c.current))
	return true, nil
}

// Back moves to the previous step without validating or saving.
func (c *Controller) Back() error {
	if c.submitted {
		return ErrSubmitted
	}
	if c.current == 0 {
		return ErrAtFirstStep
	}
	c.current--
	if err := c.ShowStep(c.current); err != nil {
		return err
	}
	c.logger.Debug("went back", zap.Int("step", c.current))
	return nil
}

// Submit ends the session from the review step: the persisted record is
// removed and the acknowledgement shown. Nothing leaves the process.
func (c *Controller) Submit(ctx context.Context) error {
	if c.submitted {
		return ErrSubmitted
	}
	if step := c.steps[c.current]; step.Submit == "" {
		return ErrNotOnSubmitStep
	}
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("controller: clear record: %w", err)
	}
	c.submitted = true
	c.view.Acknowledge(c.ack)
	c.logger.Debug("submitted", zap.String("key", c.key))
	return nil
}

// Bind registers one handler per navigation control. Each handler only acts
// when its control belongs to the active step.
func (c *Controller) Bind(src EventSource) {
	if src == nil {
		return
	}
	for _, step := range c.steps {
		index := step.Index
		if step.Next != "" {
			src.On(step.Next, c.guard(index, step.Next, func(ctx context.Context) error {
				_, err := c.Next(ctx)
				return err
			}))
		}
		if step.Back != "" {
			src.On(step.Back, c.guard(index, step.Back, func(context.Context) error {
				return c.Back()
			}))
		}
		if step.Submit != "" {
			src.On(step.Submit, c.guard(index, step.Submit, c.Submit))
		}
	}
}

func (c *Controller) guard(index int, action model.ActionID, fn Handler) Handler {
	return func(ctx context.Context) error {
		if c.submitted {
			return ErrSubmitted
		}
		if c.current != index {
			return fmt.Errorf("%w: %q on step %d", ErrStaleAction, action, c.current)
		}
		return fn(ctx)
	}
}

func (c *Controller) step(index int) (model.Step, error) {
	if index < 0 || index >= len(c.steps) {
		return model.Step{}, fmt.Errorf("%w: %d", ErrStepOutOfRange, index)
	}
	return c.steps[index], nil
}

// Current returns the active step index.
func (c *Controller) Current() int {
	return c.current
}

// Step returns the active step.
func (c *Controller) Step() model.Step {
	return c.steps[c.current]
}

// Steps returns a copy of the step sequence.
func (c *Controller) Steps() []model.Step {
	return model.CloneSteps(c.steps)
}

// Data returns a copy of the in-memory record.
func (c *Controller) Data() model.FormData {
	return c.data
}

// Submitted reports whether the form reached its terminal state.
func (c *Controller) Submitted() bool {
	return c.submitted
}

// Key returns the storage key of the record.
func (c *Controller) Key() string {
	return c.key
}
