package uischema

import "github.com/goliatone/go-formstep/pkg/model"

// Layout holds presentation overrides keyed by step index and field id.
type Layout struct {
	Source string
	// Title heads the web page.
	Title string
	// Acknowledgement is shown once the form is submitted.
	Acknowledgement string
	Steps           []StepConfig
	Fields          map[model.FieldID]FieldConfig
}

// StepConfig customises one panel. Entries are matched by position.
type StepConfig struct {
	Title string `json:"title" yaml:"title"`
}

// FieldConfig customises one input.
type FieldConfig struct {
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText    string   `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	InputType   string   `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Field returns the configuration for id, filling the label from the model
// when the layout leaves it blank.
func (l *Layout) Field(id model.FieldID) FieldConfig {
	var cfg FieldConfig
	if l != nil {
		cfg = l.Fields[id]
	}
	if cfg.Label == "" {
		cfg.Label = id.Label()
	}
	if cfg.InputType == "" {
		cfg.InputType = "text"
	}
	return cfg
}

// StepTitle returns the title configured for step, or the step's own title.
func (l *Layout) StepTitle(step model.Step) string {
	if l != nil && step.Index >= 0 && step.Index < len(l.Steps) {
		if title := l.Steps[step.Index].Title; title != "" {
			return title
		}
	}
	return step.Title
}

// Apply returns a copy of steps with titles overridden by the layout.
func (l *Layout) Apply(steps []model.Step) []model.Step {
	out := model.CloneSteps(steps)
	if l == nil {
		return out
	}
	for i := range out {
		out[i].Title = l.StepTitle(out[i])
	}
	return out
}

// Merge returns a layout where non-empty values from other replace the
// values of l.
func (l *Layout) Merge(other *Layout) *Layout {
	out := &Layout{Fields: make(map[model.FieldID]FieldConfig)}
	if l != nil {
		out.Source = l.Source
		out.Title = l.Title
		out.Acknowledgement = l.Acknowledgement
		out.Steps = append(out.Steps, l.Steps...)
		for id, cfg := range l.Fields {
			out.Fields[id] = cloneFieldConfig(cfg)
		}
	}
	if other == nil {
		return out
	}
	if other.Source != "" {
		out.Source = other.Source
	}
	if other.Title != "" {
		out.Title = other.Title
	}
	if other.Acknowledgement != "" {
		out.Acknowledgement = other.Acknowledgement
	}
	for i, step := range other.Steps {
		if i >= len(out.Steps) {
			out.Steps = append(out.Steps, step)
			continue
		}
		if step.Title != "" {
			out.Steps[i].Title = step.Title
		}
	}
	for id, cfg := range other.Fields {
		base := out.Fields[id]
		if cfg.Label != "" {
			base.Label = cfg.Label
		}
		if cfg.HelpText != "" {
			base.HelpText = cfg.HelpText
		}
		if cfg.Placeholder != "" {
			base.Placeholder = cfg.Placeholder
		}
		if cfg.InputType != "" {
			base.InputType = cfg.InputType
		}
		if len(cfg.Options) > 0 {
			base.Options = append([]string(nil), cfg.Options...)
		}
		out.Fields[id] = base
	}
	return out
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	if len(cfg.Options) > 0 {
		out.Options = append([]string(nil), cfg.Options...)
	}
	return out
}
