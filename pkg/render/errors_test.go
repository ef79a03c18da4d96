package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/validation"
)

func TestFieldErrors(t *testing.T) {
	got := render.FieldErrors(
		validation.Pass(),
		validation.Result{Field: "email", Code: validation.CodeEmailRequired, Message: " Please enter your email address "},
		validation.Result{Field: "email", Code: validation.CodeEmailInvalid, Message: "second"},
		validation.Result{Code: "orphan", Message: "no field"},
	)
	want := map[string]string{"email": "Please enter your email address"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	if got := render.FieldErrors(validation.Pass()); got != nil {
		t.Fatalf("expected nil for valid results, got %v", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{" a ", "b"}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}
