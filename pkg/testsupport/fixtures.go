package testsupport

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString returns the contents of a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// CaptureTemplateOutput calls render with a buffer and returns both the
// rendered string and what was written to the buffer.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (result, written string) {
	t.Helper()
	var sb strings.Builder
	result, err := render(&sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return result, sb.String()
}
