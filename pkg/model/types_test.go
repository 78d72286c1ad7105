package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstep/pkg/model"
)

func TestFormData_GetSet(t *testing.T) {
	var data model.FormData
	if !data.Empty() {
		t.Fatalf("zero record should be empty")
	}

	for i, field := range model.Fields() {
		data.Set(field, string(rune('a'+i)))
	}
	data.Set(model.FieldID("unknown"), "ignored")

	want := model.FormData{Name: "a", DOB: "b", Gender: "c", Email: "d", Phone: "e", Address: "f"}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if got := data.Get(model.FieldID("unknown")); got != "" {
		t.Fatalf("expected empty value for unknown field, got %q", got)
	}
}

func TestFormData_Summary(t *testing.T) {
	data := model.FormData{Name: "Ada Lovelace", DOB: "1990-12-10", Gender: "Female", Email: "ada@example.com", Phone: "5551234567", Address: "12 Analytical Row"}

	want := model.Summary{
		{Field: model.FieldName, Label: "Name", Value: "Ada Lovelace"},
		{Field: model.FieldDOB, Label: "Date of Birth", Value: "1990-12-10"},
		{Field: model.FieldGender, Label: "Gender", Value: "Female"},
		{Field: model.FieldEmail, Label: "Email", Value: "ada@example.com"},
		{Field: model.FieldPhone, Label: "Phone", Value: "5551234567"},
		{Field: model.FieldAddress, Label: "Address", Value: "12 Analytical Row"},
	}
	if diff := cmp.Diff(want, data.Summary()); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultSteps(t *testing.T) {
	steps := model.DefaultSteps()
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	for i, step := range steps {
		if step.Index != i {
			t.Fatalf("step %d has index %d", i, step.Index)
		}
	}

	if !steps[0].Has(model.ActionNext1) || steps[0].Has(model.ActionBack2) {
		t.Fatalf("step 0 actions wrong: %v", steps[0].Actions())
	}
	if diff := cmp.Diff([]model.ActionID{model.ActionBack2, model.ActionNext2}, steps[1].Actions()); diff != "" {
		t.Fatalf("step 1 actions (-want +got):\n%s", diff)
	}
	if !steps[2].Summary || steps[2].Submit != model.ActionSubmit {
		t.Fatalf("last step must be the submit/summary step")
	}
}

func TestCloneSteps_Independent(t *testing.T) {
	steps := model.DefaultSteps()
	clone := model.CloneSteps(steps)
	clone[0].Fields[0] = model.FieldPhone
	clone[0].Title = "changed"

	if steps[0].Fields[0] != model.FieldName || steps[0].Title == "changed" {
		t.Fatalf("clone mutated source steps")
	}
}
