package vanilla

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-formstep/pkg/model"
	rendertemplate "github.com/goliatone/go-formstep/pkg/render/template"
	"github.com/goliatone/go-formstep/pkg/render/template/pongo"
	"github.com/goliatone/go-formstep/pkg/uischema"
)

type Option func(*config)

type config struct {
	templatesDir string
	layout       *uischema.Layout
	title        string
}

// DefaultTitle heads the page when neither WithTitle nor the layout name one.
const DefaultTitle = "Multi-step form"

// WithTemplatesDir loads templates from a directory on disk. Templates missing
// there fall back to the bundled set.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithLayout supplies labels, placeholders and select options.
func WithLayout(layout *uischema.Layout) Option {
	return func(cfg *config) {
		if layout != nil {
			cfg.layout = layout
		}
	}
}

// WithTitle sets the document title, overriding the layout's.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	layout    *uischema.Layout
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{layout: uischema.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templatesDir != "" {
		info, err := os.Stat(cfg.templatesDir)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: templates dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("vanilla renderer: templates dir %s is not a directory", cfg.templatesDir)
		}
	}
	title := cfg.title
	if title == "" {
		title = cfg.layout.Title
	}
	if title == "" {
		title = DefaultTitle
	}

	engine, err := pongo.New(
		pongo.WithBaseDir(cfg.templatesDir),
		pongo.WithFS(TemplatesFS()),
		pongo.WithExtension(".tmpl"),
		pongo.WithGlobalData(map[string]any{
			"title":      title,
			"form_id":    string(model.ActionSubmit),
			"summary_id": model.SummaryID,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	return &Renderer{templates: engine, layout: cfg.layout}, nil
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full HTML document for page.
func (r *Renderer) Render(ctx context.Context, page *Page) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if page == nil {
		return nil, errors.New("vanilla renderer: page is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(FormTemplate, r.context(page))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) context(page *Page) map[string]any {
	steps := r.layout.Apply(page.Steps)
	views := make([]map[string]any, 0, len(steps))
	for _, step := range steps {
		fields := make([]map[string]any, 0, len(step.Fields))
		for _, id := range step.Fields {
			fields = append(fields, r.fieldContext(page, id))
		}
		view := map[string]any{
			"id":      step.ID,
			"title":   step.Title,
			"active":  step.Index == page.Active,
			"fields":  fields,
			"next":    string(step.Next),
			"back":    string(step.Back),
			"submit":  string(step.Submit),
			"summary": step.Summary,
		}
		views = append(views, view)
	}

	return map[string]any{
		"steps":        views,
		"summary_html": SummaryHTML(r.labelled(page.Summary)),
		"notice":       page.Notice,
		"alert":        page.Alert,
	}
}

func (r *Renderer) fieldContext(page *Page, id model.FieldID) map[string]any {
	cfg := r.layout.Field(id)
	message, invalid := page.Errors[id]
	return map[string]any{
		"id":          string(id),
		"label":       cfg.Label,
		"type":        cfg.InputType,
		"placeholder": cfg.Placeholder,
		"help":        cfg.HelpText,
		"options":     cfg.Options,
		"value":       page.Values[id],
		"invalid":     invalid,
		"error":       message,
	}
}

func (r *Renderer) labelled(summary model.Summary) model.Summary {
	out := make(model.Summary, len(summary))
	for i, item := range summary {
		item.Label = r.layout.Field(item.Field).Label
		out[i] = item
	}
	return out
}
