package uischema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/uischema"
)

func TestDefault(t *testing.T) {
	layout := uischema.Default()

	gender := layout.Field(model.FieldGender)
	if diff := cmp.Diff([]string{"Male", "Female", "Other"}, gender.Options); diff != "" {
		t.Fatalf("gender options (-want +got):\n%s", diff)
	}
	if got := layout.Field(model.FieldDOB).InputType; got != "date" {
		t.Fatalf("dob input type = %q", got)
	}

	steps := layout.Apply(model.DefaultSteps())
	if steps[2].Title != "Review" {
		t.Fatalf("unexpected review title %q", steps[2].Title)
	}
}

func TestLoad_YAMLMergesOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	doc := `
acknowledgement: Thanks, we will be in touch.
steps:
  - title: About you
fields:
  gender:
    options: [Woman, Man, Non-binary]
  address:
    helpText: Street, city and postcode
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	layout, err := uischema.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if layout.Title != "Multi-step form" {
		t.Fatalf("title should keep the default, got %q", layout.Title)
	}
	if layout.Acknowledgement != "Thanks, we will be in touch." {
		t.Fatalf("acknowledgement not merged: %q", layout.Acknowledgement)
	}

	steps := layout.Apply(model.DefaultSteps())
	if steps[0].Title != "About you" || steps[1].Title != "Contact details" {
		t.Fatalf("step titles not merged: %q, %q", steps[0].Title, steps[1].Title)
	}
	gender := layout.Field(model.FieldGender)
	if diff := cmp.Diff([]string{"Woman", "Man", "Non-binary"}, gender.Options); diff != "" {
		t.Fatalf("gender options (-want +got):\n%s", diff)
	}
	if gender.InputType != "select" {
		t.Fatalf("input type should survive merge, got %q", gender.InputType)
	}
	address := layout.Field(model.FieldAddress)
	if address.HelpText != "Street, city and postcode" || address.InputType != "textarea" {
		t.Fatalf("address not merged: %#v", address)
	}

	if got := uischema.Default().Field(model.FieldGender).Options[0]; got != "Male" {
		t.Fatalf("default layout mutated: %q", got)
	}
}

func TestParse_JSON(t *testing.T) {
	layout, err := uischema.Parse([]byte(`{"fields":{"phone":{"label":"Mobile"}}}`), "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := layout.Field(model.FieldPhone).Label; got != "Mobile" {
		t.Fatalf("label = %q", got)
	}
	if got := layout.Field(model.FieldName).Label; got != "Name" {
		t.Fatalf("fallback label = %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := uischema.Parse([]byte("   "), "blank.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	_, err := uischema.Parse([]byte("fields:\n  nickname:\n    label: Nick\n"), "bad.yaml")
	if err == nil || !strings.Contains(err.Error(), "nickname") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := uischema.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStepTitle_UsesStepIndex(t *testing.T) {
	layout, err := uischema.Parse([]byte("steps:\n  - title: One\n  - title: Two\n  - title: Three\n"), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	review := model.DefaultSteps()[2]
	if got := layout.StepTitle(review); got != "Three" {
		t.Fatalf("title = %q", got)
	}

	var empty *uischema.Layout
	if got := empty.StepTitle(review); got != "Review" {
		t.Fatalf("nil layout title = %q", got)
	}
}
