package validation

import (
	"time"

	"github.com/goliatone/go-formstep/pkg/model"
)

// Issue is a single failed rule attached to a field.
type Issue struct {
	Field   model.FieldID `json:"field"`
	Message string        `json:"message"`
}

// Result captures the outcome of validating one step.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// MessageFor returns the failure message recorded for field, if any.
func (r Result) MessageFor(field model.FieldID) (string, bool) {
	for _, issue := range r.Issues {
		if issue.Field == field {
			return issue.Message, true
		}
	}
	return "", false
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the time source used by the age rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithRules replaces the rule for each field present in rules. Fields not
// mentioned keep their default rule.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		for _, rule := range rules {
			if rule.Field == "" || rule.Check == nil {
				continue
			}
			v.rules[rule.Field] = rule
		}
	}
}

// Validator applies field rules to the inputs of a step.
type Validator struct {
	rules map[model.FieldID]Rule
	now   func() time.Time
}

// New builds a Validator seeded with DefaultRules.
func New(options ...Option) *Validator {
	v := &Validator{
		rules: make(map[model.FieldID]Rule),
		now:   time.Now,
	}
	for _, rule := range DefaultRules() {
		v.rules[rule.Field] = rule
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Rule returns the rule registered for field.
func (v *Validator) Rule(field model.FieldID) (Rule, bool) {
	rule, ok := v.rules[field]
	return rule, ok
}

// Field checks a single value. Fields without a rule always pass.
func (v *Validator) Field(field model.FieldID, value string) (string, bool) {
	rule, ok := v.rules[field]
	if !ok {
		return "", true
	}
	if rule.Check(value, v.now()) {
		return "", true
	}
	return rule.Message, false
}

// ValidateStep evaluates every field of step. All fields are checked even
// after the first failure so each one can be annotated.
func (v *Validator) ValidateStep(step model.Step, value func(model.FieldID) string) Result {
	result := Result{Valid: true}
	for _, field := range step.Fields {
		var raw string
		if value != nil {
			raw = value(field)
		}
		if msg, ok := v.Field(field, raw); !ok {
			result.Valid = false
			result.Issues = append(result.Issues, Issue{Field: field, Message: msg})
		}
	}
	return result
}
