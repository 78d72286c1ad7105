package vanilla

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/uischema"
)

func renderPage(t *testing.T, page *Page, opts ...Option) string {
	t.Helper()
	renderer, err := New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), page)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_ElementIdentifiers(t *testing.T) {
	page := NewPage(model.DefaultSteps())
	html := renderPage(t, page)
	for _, id := range []string{"name", "dob", "gender", "email", "phone", "address", "multi-step-form", "summary"} {
		if !strings.Contains(html, `id="`+id+`"`) {
			t.Fatalf("expected element id %q in output", id)
		}
	}

	controls := map[int][]string{
		0: {"next-1"},
		1: {"next-2", "back-2"},
		2: {"back-3"},
	}
	for index, ids := range controls {
		page.ShowStep(page.Steps[index])
		html := renderPage(t, page)
		for _, id := range ids {
			if !strings.Contains(html, `id="`+id+`"`) {
				t.Fatalf("step %d: expected control id %q in output", index+1, id)
			}
		}
	}
	if !strings.Contains(renderPage(t, page), `name="action" value="multi-step-form"`) {
		t.Fatalf("expected submit control on the review step")
	}
}

func TestRender_DefaultButtonBelongsToActiveStep(t *testing.T) {
	cases := []struct {
		active int
		want   string
	}{
		{active: 0, want: "next-1"},
		{active: 1, want: "next-2"},
		{active: 2, want: "multi-step-form"},
	}
	for _, tc := range cases {
		page := NewPage(model.DefaultSteps())
		page.ShowStep(page.Steps[tc.active])
		html := renderPage(t, page)

		// Implicit submission (Enter in a text input) uses the first submit
		// button in the form.
		const marker = `name="action" value="`
		start := strings.Index(html, marker)
		if start < 0 {
			t.Fatalf("step %d: no action buttons rendered", tc.active+1)
		}
		rest := html[start+len(marker):]
		got := rest[:strings.Index(rest, `"`)]
		if got != tc.want {
			t.Fatalf("step %d: first action = %q, want %q", tc.active+1, got, tc.want)
		}

		for i, step := range page.Steps {
			if i == tc.active {
				continue
			}
			for _, action := range step.Actions() {
				if strings.Contains(html, marker+string(action)+`"`) {
					t.Fatalf("step %d: inactive step action %q rendered", tc.active+1, action)
				}
			}
		}
	}
}

func TestRender_OnlyActiveStepVisible(t *testing.T) {
	page := NewPage(model.DefaultSteps())
	page.ShowStep(page.Steps[1])
	html := renderPage(t, page)

	if got := strings.Count(html, `class="form-step active"`); got != 1 {
		t.Fatalf("expected exactly one active step, got %d", got)
	}
	if !strings.Contains(html, `<section id="step-2" class="form-step active">`) {
		t.Fatalf("expected step-2 to be active:\n%s", html)
	}
	if !strings.Contains(html, `<section id="step-1" class="form-step" hidden>`) {
		t.Fatalf("expected step-1 to be hidden")
	}
}

func TestRender_ValuesAndInlineErrors(t *testing.T) {
	page := NewPage(model.DefaultSteps())
	page.SetFieldValue(model.FieldName, `R2 "D2"`)
	page.SetFieldValue(model.FieldGender, "Female")
	page.MarkInvalid(model.FieldName, "Name must contain only letters and spaces.")
	page.MarkInvalid(model.FieldName, "Name must contain only letters and spaces.")

	html := renderPage(t, page)

	if !strings.Contains(html, `value="R2 &quot;D2&quot;"`) {
		t.Fatalf("expected escaped value in output")
	}
	if !strings.Contains(html, `<option value="Female" selected>`) {
		t.Fatalf("expected gender option to be selected")
	}
	if got := strings.Count(html, "Name must contain only letters and spaces."); got != 1 {
		t.Fatalf("expected a single inline error, got %d", got)
	}
	if !strings.Contains(html, `aria-invalid="true"`) {
		t.Fatalf("expected invalid marker")
	}

	page.ClearInvalid(model.FieldName)
	html = renderPage(t, page)
	if strings.Contains(html, "error-message\">") || strings.Contains(html, `aria-invalid="true"`) {
		t.Fatalf("expected error to be cleared")
	}
}

func TestRender_SummaryAndNotice(t *testing.T) {
	page := NewPage(model.DefaultSteps())
	page.ShowStep(page.Steps[2])
	data := model.FormData{Name: "Ada Lovelace", Address: "<script>alert(1)</script> Row"}
	page.RenderSummary(data.Summary())
	page.Acknowledge("Form submitted successfully!")

	html := renderPage(t, page)

	if !strings.Contains(html, "<p><strong>Name:</strong> Ada Lovelace</p>") {
		t.Fatalf("expected summary paragraph:\n%s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("summary must not contain raw markup")
	}
	if !strings.Contains(html, `role="alert">Form submitted successfully!</div>`) {
		t.Fatalf("expected acknowledgement notice")
	}
}

func TestRender_LayoutOverrides(t *testing.T) {
	layout, err := uischema.Parse([]byte("steps:\n  - title: About you\nfields:\n  name:\n    label: Full name\n"), "inline")
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	page := NewPage(model.DefaultSteps())
	html := renderPage(t, page, WithLayout(uischema.Default().Merge(layout)))

	if !strings.Contains(html, "<h2>About you</h2>") {
		t.Fatalf("expected overridden step title")
	}
	if !strings.Contains(html, `<label for="name">Full name</label>`) {
		t.Fatalf("expected overridden label")
	}
}

func TestRender_TitleFromLayout(t *testing.T) {
	layout, err := uischema.Parse([]byte("title: Join the club\n"), "inline")
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	page := NewPage(model.DefaultSteps())

	html := renderPage(t, page, WithLayout(uischema.Default().Merge(layout)))
	if !strings.Contains(html, "<title>Join the club</title>") {
		t.Fatalf("expected layout title")
	}

	html = renderPage(t, page, WithLayout(layout), WithTitle("Override"))
	if !strings.Contains(html, "<title>Override</title>") {
		t.Fatalf("expected explicit title to win")
	}

	html = renderPage(t, page, WithLayout(&uischema.Layout{}))
	if !strings.Contains(html, "<title>"+DefaultTitle+"</title>") {
		t.Fatalf("expected default title")
	}
}

func TestRender_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := `<h1>{{ title }}</h1>{% for step in steps %}{% if step.active %}{{ step.id }}{% endif %}{% endfor %}{{ alert }}`
	if err := os.WriteFile(filepath.Join(dir, FormTemplate), []byte(custom), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	page := NewPage(model.DefaultSteps())
	page.Alert = "nope"

	html := renderPage(t, page, WithTemplatesDir(dir))
	if html != "<h1>Multi-step form</h1>step-1nope" {
		t.Fatalf("unexpected custom render %q", html)
	}

	if _, err := New(WithTemplatesDir(filepath.Join(dir, "missing"))); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}

func TestSummaryHTML(t *testing.T) {
	summary := model.FormData{Name: "Ada", Email: "a@b.co"}.Summary()
	got := SummaryHTML(summary)
	want := "<p><strong>Name:</strong> Ada</p>" +
		"<p><strong>Date of Birth:</strong> </p>" +
		"<p><strong>Gender:</strong> </p>" +
		"<p><strong>Email:</strong> a@b.co</p>" +
		"<p><strong>Phone:</strong> </p>" +
		"<p><strong>Address:</strong> </p>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if SummaryHTML(nil) != "" {
		t.Fatalf("expected empty fragment for empty summary")
	}
}

func TestPage_FillIgnoresUnknownFields(t *testing.T) {
	page := NewPage(model.DefaultSteps())
	page.Fill(map[model.FieldID]string{model.FieldEmail: "a@b.co", "bogus": "x"})

	if diff := cmp.Diff(map[model.FieldID]string{model.FieldEmail: "a@b.co"}, page.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
