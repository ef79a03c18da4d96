// Package konami detects the konami code in a stream of key presses.
package konami

import (
	"slices"
	"sync"
)

// Message is shown when the code is entered.
const Message = "🎉 Konami Code Activated! You're already thinking like a cybersecurity pro!"

// Pattern is the key sequence, using KeyboardEvent.key names.
var Pattern = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a",
}

// Detector keeps the most recent key presses. The zero value is ready to use.
type Detector struct {
	mu     sync.Mutex
	recent []string
}

// Press records key and reports whether it completed the pattern. The buffer
// is cleared after a match.
func (d *Detector) Press(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.recent = append(d.recent, key)
	if extra := len(d.recent) - len(Pattern); extra > 0 {
		d.recent = append(d.recent[:0], d.recent[extra:]...)
	}
	if !slices.Equal(d.recent, Pattern) {
		return false
	}
	d.recent = d.recent[:0]
	return true
}
