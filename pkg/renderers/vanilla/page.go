package vanilla

import (
	"github.com/goliatone/go-formstep/pkg/controller"
	"github.com/goliatone/go-formstep/pkg/model"
)

// Page is the server-side stand-in for the browser document: it holds the
// input values, inline errors and visible panel that the controller drives,
// and is what Renderer turns into HTML.
type Page struct {
	Steps   []model.Step
	Active  int
	Values  map[model.FieldID]string
	Errors  map[model.FieldID]string
	Summary model.Summary
	Notice  string
	// Alert reports a rejected request. It is not part of controller.View.
	Alert string
}

var _ controller.View = (*Page)(nil)

// NewPage returns an empty page for steps.
func NewPage(steps []model.Step) *Page {
	return &Page{
		Steps:  model.CloneSteps(steps),
		Values: make(map[model.FieldID]string),
		Errors: make(map[model.FieldID]string),
	}
}

// Reset drops transient state the way a reload would: errors, the rendered
// summary and any notice. Input values are repopulated by Initialize.
func (p *Page) Reset() {
	p.Active = 0
	p.Errors = make(map[model.FieldID]string)
	p.Summary = nil
	p.Notice = ""
	p.Alert = ""
}

// Fill copies posted values into the inputs. Unknown fields are ignored.
func (p *Page) Fill(values map[model.FieldID]string) {
	for field, value := range values {
		if !field.Valid() {
			continue
		}
		p.Values[field] = value
	}
}

func (p *Page) ShowStep(step model.Step) {
	p.Active = step.Index
}

func (p *Page) FieldValue(field model.FieldID) string {
	return p.Values[field]
}

func (p *Page) SetFieldValue(field model.FieldID, value string) {
	p.Values[field] = value
}

func (p *Page) MarkInvalid(field model.FieldID, message string) {
	p.Errors[field] = message
}

func (p *Page) ClearInvalid(field model.FieldID) {
	delete(p.Errors, field)
}

func (p *Page) RenderSummary(summary model.Summary) {
	p.Summary = append(model.Summary(nil), summary...)
}

func (p *Page) Acknowledge(message string) {
	p.Notice = message
}
