// Package chatbot answers visitor questions from a fixed keyword table. It
// keeps no conversation state.
package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cybertalent/internal/clock"
)

// DefaultDelay is how long the bot "types" before replying.
const DefaultDelay = 500 * time.Millisecond

// ErrEmptyMessage is returned for blank input.
var ErrEmptyMessage = errors.New("chatbot: message is empty")

// Exchange is one question and its answer. Echo is the visitor text with all
// markup stripped, ready to be shown back.
type Exchange struct {
	Echo    string `json:"echo"`
	Reply   string `json:"reply"`
	Topic   string `json:"topic,omitempty"`
	Matched bool   `json:"matched"`
}

// Option customises a Bot.
type Option func(*Bot)

// WithTable replaces the bundled response table.
func WithTable(t Table) Option {
	return func(b *Bot) {
		b.table = t
	}
}

// WithDelay overrides DefaultDelay. Zero replies immediately.
func WithDelay(d time.Duration) Option {
	return func(b *Bot) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// WithPolicy overrides the sanitiser used for the echo.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(b *Bot) {
		b.policy = p
	}
}

// Bot is safe for concurrent use.
type Bot struct {
	table  Table
	delay  time.Duration
	policy *bluemonday.Policy
}

// New constructs a Bot with the bundled table.
func New(options ...Option) *Bot {
	b := &Bot{delay: DefaultDelay}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.table.Default == "" {
		b.table = DefaultTable()
	}
	if b.policy == nil {
		b.policy = bluemonday.StrictPolicy()
	}
	return b
}

// Table returns the table in use.
func (b *Bot) Table() Table {
	return b.table
}

// Reply waits for the reply delay and answers message. It returns ctx.Err()
// if ctx finishes first.
func (b *Bot) Reply(ctx context.Context, message string) (Exchange, error) {
	if strings.TrimSpace(message) == "" {
		return Exchange{}, ErrEmptyMessage
	}
	// Matching sees the raw text; only the echo shown back is sanitised.
	echo := strings.TrimSpace(b.policy.Sanitize(message))

	if err := clock.Sleep(ctx, b.delay); err != nil {
		return Exchange{}, err
	}

	out := Exchange{Echo: echo, Reply: b.table.Default}
	if entry, ok := b.table.Match(message); ok {
		out.Reply = entry.Response
		out.Topic = entry.Name
		out.Matched = true
	}
	return out, nil
}
