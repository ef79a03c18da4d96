// Package nav holds the navigation bar behaviour: the scrolled style, the
// mobile menu, the active section highlight and smooth scroll targets.
package nav

import (
	"strings"
	"sync"
)

const (
	// ScrolledAfter is the scroll offset past which the navbar is restyled.
	ScrolledAfter = 50
	// ActiveOffset is added to the scroll position when picking the active
	// section.
	ActiveOffset = 100
	// ScrollOffset keeps scroll targets clear of the fixed navbar.
	ScrollOffset = 80
)

// ApplyAnchor is the href of the buttons that open the apply dialog.
const ApplyAnchor = "#apply"

// Section is a page section with its layout box.
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Contains reports whether position falls inside the section.
func (s Section) Contains(position float64) bool {
	return position >= s.Top && position < s.Top+s.Height
}

// Scrolled reports whether the navbar should use its scrolled style.
func Scrolled(scrollY float64) bool {
	return scrollY > ScrolledAfter
}

// SectionAt returns the section containing position. When sections overlap
// the last one wins.
func SectionAt(sections []Section, position float64) (Section, bool) {
	var (
		found Section
		ok    bool
	)
	for _, s := range sections {
		if s.Contains(position) {
			found, ok = s, true
		}
	}
	return found, ok
}

// ActiveSection returns the id of the section to highlight in the menu.
func ActiveSection(sections []Section, scrollY float64) (string, bool) {
	s, ok := SectionAt(sections, scrollY+ActiveOffset)
	return s.ID, ok
}

// ScrollTarget resolves where an in-page link should scroll to. It reports
// false when the link should keep its default behaviour: bare "#", apply
// buttons (they open the dialog), non-anchors and unknown targets.
func ScrollTarget(href string, isButton bool, sections []Section) (float64, bool) {
	if href == ApplyAnchor && isButton {
		return 0, false
	}
	if !strings.HasPrefix(href, "#") || len(href) < 2 {
		return 0, false
	}
	id := href[1:]
	for _, s := range sections {
		if s.ID == id {
			return s.Top - ScrollOffset, true
		}
	}
	return 0, false
}

// Menu is the mobile menu toggle.
type Menu struct {
	mu   sync.Mutex
	open bool
}

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
	return m.open
}

// LinkClicked closes the menu after navigation.
func (m *Menu) LinkClicked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// Open reports whether the menu is expanded.
func (m *Menu) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
