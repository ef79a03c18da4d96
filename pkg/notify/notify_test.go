package notify_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/notify"
	"github.com/goliatone/go-cybertalent/pkg/testsupport"
)

func TestCenterLifecycle(t *testing.T) {
	sched := testsupport.NewScheduler()
	c := notify.New(notify.WithScheduler(sched))

	shown := c.Success("Saved")
	want := notify.Notification{ID: 1, Kind: notify.KindSuccess, Message: "Saved", Phase: notify.PhaseVisible, Color: "#10B981"}
	if diff := cmp.Diff(want, shown); diff != "" {
		t.Fatalf("notification mismatch (-want +got):\n%s", diff)
	}

	sched.Advance(notify.DefaultTTL - time.Millisecond)
	if n, _ := c.Current(); n.Phase != notify.PhaseVisible {
		t.Fatalf("should still be visible, got %s", n.Phase)
	}

	sched.Advance(time.Millisecond)
	if n, _ := c.Current(); n.Phase != notify.PhaseLeaving {
		t.Fatalf("should be leaving after ttl, got %s", n.Phase)
	}

	sched.Advance(notify.DefaultLeave)
	if _, ok := c.Current(); ok {
		t.Fatalf("slot should be empty after the leaving phase")
	}
}

func TestCenterNewNotificationEvictsPrevious(t *testing.T) {
	sched := testsupport.NewScheduler()
	c := notify.New(notify.WithScheduler(sched))

	c.Info("first")
	sched.Advance(4 * time.Second)
	c.Error("second")

	// The first notification's timer would have fired here.
	sched.Advance(2 * time.Second)
	n, ok := c.Current()
	if !ok || n.Message != "second" || n.Phase != notify.PhaseVisible {
		t.Fatalf("expected second notification to stay visible, got %+v", n)
	}
	if n.Class() != "notification notification-error" {
		t.Fatalf("unexpected class %q", n.Class())
	}

	sched.Advance(3*time.Second + notify.DefaultLeave)
	if _, ok := c.Current(); ok {
		t.Fatalf("second notification should be gone")
	}
	if sched.Pending() != 0 {
		t.Fatalf("no timers should remain, got %d", sched.Pending())
	}
}

func TestCenterOptions(t *testing.T) {
	sched := testsupport.NewScheduler()
	var changes []string
	c := notify.New(
		notify.WithScheduler(sched),
		notify.WithTTL(time.Second),
		notify.WithLeave(0),
		notify.WithPalette(map[notify.Kind]string{notify.KindInfo: "#000000"}),
		notify.WithOnChange(func(n *notify.Notification) {
			if n == nil {
				changes = append(changes, "empty")
				return
			}
			changes = append(changes, string(n.Phase))
		}),
	)

	if got := c.Info("hello").Color; got != "#000000" {
		t.Fatalf("palette override not applied: %s", got)
	}
	sched.Advance(time.Second)

	want := []string{"visible", "leaving", "empty"}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestDismissAndParseKind(t *testing.T) {
	c := notify.New(notify.WithScheduler(testsupport.NewScheduler()))
	c.Info("x")
	c.Dismiss()
	if _, ok := c.Current(); ok {
		t.Fatalf("dismiss should empty the slot")
	}

	if notify.ParseKind(" Error ") != notify.KindError || notify.ParseKind("weird") != notify.KindInfo {
		t.Fatalf("unexpected kind parsing")
	}
}
