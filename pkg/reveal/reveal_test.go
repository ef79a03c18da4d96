package reveal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/pkg/reveal"
)

func TestObserverFiresOnce(t *testing.T) {
	var fired []string
	o := reveal.NewObserver(reveal.RevealThreshold, func(id string) { fired = append(fired, id) })
	o.Observe("card-1", "card-2")

	got := o.Update(
		reveal.Entry{ID: "card-1", Ratio: 0.05},
		reveal.Entry{ID: "card-2", Ratio: 0.1},
		reveal.Entry{ID: "unknown", Ratio: 1},
	)
	if diff := cmp.Diff([]string{"card-2"}, got); diff != "" {
		t.Fatalf("revealed mismatch (-want +got):\n%s", diff)
	}

	o.Update(reveal.Entry{ID: "card-2", Ratio: 1}, reveal.Entry{ID: "card-1", Ratio: 0.4})
	if diff := cmp.Diff([]string{"card-2", "card-1"}, fired); diff != "" {
		t.Fatalf("fired mismatch (-want +got):\n%s", diff)
	}
	if len(o.Observing()) != 0 {
		t.Fatalf("revealed targets should be unobserved, still watching %v", o.Observing())
	}
}

func TestStatsThreshold(t *testing.T) {
	o := reveal.NewObserver(reveal.StatsThreshold, nil)
	o.Observe("stat")
	if got := o.Update(reveal.Entry{ID: "stat", Ratio: 0.49}); len(got) != 0 {
		t.Fatalf("below threshold should not fire")
	}
	if got := o.Update(reveal.Entry{ID: "stat", Ratio: 0.5}); len(got) != 1 {
		t.Fatalf("at threshold should fire")
	}
}

func TestParseTarget(t *testing.T) {
	cases := map[string]int{"2,500+": 2500, "95%": 95, "£3.5k": 35}
	for in, want := range cases {
		got, ok := reveal.ParseTarget(in)
		if !ok || got != want {
			t.Fatalf("ParseTarget(%q): want %d, got %d (%v)", in, want, got, ok)
		}
	}
	if _, ok := reveal.ParseTarget("many"); ok {
		t.Fatalf("text without digits has no target")
	}
}

func TestFrames(t *testing.T) {
	frames := reveal.Frames(1000, reveal.DefaultDuration, reveal.FrameInterval)
	if len(frames) != 125 {
		t.Fatalf("expected 125 frames, got %d", len(frames))
	}
	if frames[0] != 8 || frames[len(frames)-1] != 1000 {
		t.Fatalf("unexpected first/last frame %d/%d", frames[0], frames[len(frames)-1])
	}
	for i := 1; i < len(frames); i++ {
		if frames[i] < frames[i-1] {
			t.Fatalf("frames must not decrease at %d", i)
		}
	}

	if diff := cmp.Diff([]int{1, 2, 3}, reveal.Frames(3, 48*time.Millisecond, 16*time.Millisecond)); diff != "" {
		t.Fatalf("small frames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, reveal.Frames(0, time.Second, reveal.FrameInterval)); diff != "" {
		t.Fatalf("zero target mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatStat(t *testing.T) {
	if got := reveal.FormatStat(12500, language.English); got != "12,500" {
		t.Fatalf("en: got %q", got)
	}
	if got := reveal.FormatStat(12500, language.German); got != "12.500" {
		t.Fatalf("de: got %q", got)
	}
}

func TestAnimateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := reveal.Animate(ctx, 100, language.English, func(string) {
		t.Fatalf("no frame should be emitted after cancel")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
