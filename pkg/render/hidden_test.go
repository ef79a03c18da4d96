package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/render"
)

func TestCSRFToken(t *testing.T) {
	want := render.HiddenField{Name: "_csrf", Value: "tok"}
	if diff := cmp.Diff(want, render.CSRFToken("tok")); diff != "" {
		t.Fatalf("csrf field mismatch (-want +got):\n%s", diff)
	}
}
