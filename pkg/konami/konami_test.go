package konami_test

import (
	"testing"

	"github.com/goliatone/go-cybertalent/pkg/konami"
)

func press(d *konami.Detector, keys ...string) (matches int) {
	for _, k := range keys {
		if d.Press(k) {
			matches++
		}
	}
	return matches
}

func TestDetectorMatchesAfterNoise(t *testing.T) {
	var d konami.Detector
	keys := append([]string{"x", "ArrowUp", "Enter"}, konami.Pattern...)
	if got := press(&d, keys...); got != 1 {
		t.Fatalf("expected one match, got %d", got)
	}
}

func TestDetectorClearsAfterMatch(t *testing.T) {
	var d konami.Detector
	press(&d, konami.Pattern...)

	// The trailing "a" of the first run must not count towards a second.
	if got := press(&d, konami.Pattern[1:]...); got != 0 {
		t.Fatalf("buffer should be cleared after a match, got %d matches", got)
	}
	if got := press(&d, konami.Pattern...); got != 1 {
		t.Fatalf("expected a second match, got %d", got)
	}
}

func TestDetectorCaseSensitive(t *testing.T) {
	var d konami.Detector
	keys := append(append([]string(nil), konami.Pattern[:8]...), "B", "A")
	if got := press(&d, keys...); got != 0 {
		t.Fatalf("uppercase letters should not match")
	}
}
