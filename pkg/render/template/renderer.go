package template

// TemplateRenderer renders named templates with the supplied data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}
