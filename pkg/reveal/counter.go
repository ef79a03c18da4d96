package reveal

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultDuration = 2000 * time.Millisecond
	FrameInterval   = 16 * time.Millisecond
)

// ParseTarget extracts the counter target from stat text by dropping every
// non-digit, so "2,500+" counts to 2500.
func ParseTarget(text string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Frames returns the value shown on each frame while counting from zero to
// target. Intermediate values are floored; the last frame is always target.
func Frames(target int, duration, interval time.Duration) []int {
	if target <= 0 || interval <= 0 || duration <= interval {
		return []int{max(target, 0)}
	}
	increment := float64(target) / (float64(duration) / float64(interval))
	var frames []int
	current := 0.0
	for {
		current += increment
		if current >= float64(target) {
			return append(frames, target)
		}
		frames = append(frames, int(math.Floor(current)))
	}
}

// FormatStat groups digits the way locale expects, e.g. 12,500 for en and
// 12.500 for de.
func FormatStat(n int, locale language.Tag) string {
	return message.NewPrinter(locale).Sprintf("%d", n)
}

// Animate emits one formatted frame per interval until the target is shown.
// It stops early with ctx.Err() when ctx is done.
func Animate(ctx context.Context, target int, locale language.Tag, emit func(string)) error {
	frames := Frames(target, DefaultDuration, FrameInterval)
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for _, value := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			emit(FormatStat(value, locale))
		}
	}
	return nil
}
