package testsupport

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSchedulerRunsCallbacksInDueOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	s.AfterFunc(time.Second, func() {
		got = append(got, "a")
		s.AfterFunc(500*time.Millisecond, func() { got = append(got, "a2") })
	})
	s.AfterFunc(2*time.Second, func() { got = append(got, "c") })
	stopped := s.AfterFunc(time.Second, func() { got = append(got, "stopped") })

	if !stopped.Stop() {
		t.Fatalf("Stop should report a pending timer")
	}
	if stopped.Stop() {
		t.Fatalf("second Stop should report nothing pending")
	}

	s.Advance(1500 * time.Millisecond)
	if diff := cmp.Diff([]string{"a", "a2"}, got); diff != "" {
		t.Fatalf("callbacks mismatch (-want +got):\n%s", diff)
	}
	if s.Pending() != 2 {
		t.Fatalf("want 2 pending, got %d", s.Pending())
	}

	s.Advance(time.Second)
	if diff := cmp.Diff([]string{"a", "a2", "b", "c"}, got); diff != "" {
		t.Fatalf("callbacks mismatch (-want +got):\n%s", diff)
	}
	if s.Pending() != 0 {
		t.Fatalf("want nothing pending, got %d", s.Pending())
	}
}
