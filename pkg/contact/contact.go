// Package contact validates and records the landing page contact form.
// Submissions are simulated: they are logged and never forwarded.
package contact

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-cybertalent/pkg/validation"
)

// SuccessMessage is shown after a valid submission.
const SuccessMessage = "Thank you! We'll get back to you within 24 hours."

// Form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FromForm reads a posted contact form.
func FromForm(values url.Values) Message {
	return Message{
		Name:    values.Get(FieldName),
		Email:   values.Get(FieldEmail),
		Message: values.Get(FieldMessage),
	}
}

// Validate checks presence first, then the email shape.
func Validate(m Message) validation.Result {
	switch {
	case blank(m.Name):
		return failure(FieldName, validation.CodeContactFieldsRequired)
	case blank(m.Email):
		return failure(FieldEmail, validation.CodeContactFieldsRequired)
	case blank(m.Message):
		return failure(FieldMessage, validation.CodeContactFieldsRequired)
	case !validation.ValidEmail(m.Email):
		return failure(FieldEmail, validation.CodeEmailInvalid)
	}
	return validation.Pass()
}

// Receipt acknowledges a recorded message.
type Receipt struct {
	Reference  string    `json:"reference"`
	ReceivedAt time.Time `json:"receivedAt"`
	Notice     string    `json:"notice"`
}

// Sink receives valid messages.
type Sink interface {
	Deliver(ctx context.Context, ref string, m Message) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, ref string, m Message) error

// Deliver calls fn.
func (fn SinkFunc) Deliver(ctx context.Context, ref string, m Message) error {
	return fn(ctx, ref, m)
}

// Option customises a Form.
type Option func(*Form)

// WithLogger sets the logger used by the default sink.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithSink overrides where valid messages go.
func WithSink(s Sink) Option {
	return func(f *Form) {
		f.sink = s
	}
}

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// Form handles contact submissions.
type Form struct {
	sink   Sink
	logger *zap.Logger
	now    func() time.Time
}

// New constructs a Form that logs messages.
func New(options ...Option) *Form {
	f := &Form{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.sink == nil {
		logger := f.logger
		f.sink = SinkFunc(func(_ context.Context, ref string, m Message) error {
			logger.Info("contact message received",
				zap.String("reference", ref),
				zap.String("name", m.Name),
				zap.String("email", m.Email),
				zap.Int("message_length", len([]rune(m.Message))),
			)
			return nil
		})
	}
	return f
}

// Submit validates m and, when valid, hands it to the sink. Invalid messages
// are reported through the result with a nil error.
func (f *Form) Submit(ctx context.Context, m Message) (Receipt, validation.Result, error) {
	res := Validate(m)
	if !res.Valid {
		return Receipt{}, res, nil
	}

	m.Email = strings.TrimSpace(m.Email)
	receipt := Receipt{Reference: uuid.NewString(), ReceivedAt: f.now(), Notice: SuccessMessage}
	if err := f.sink.Deliver(ctx, receipt.Reference, m); err != nil {
		return Receipt{}, res, fmt.Errorf("contact: deliver %s: %w", receipt.Reference, err)
	}
	return receipt, res, nil
}

func failure(field, code string) validation.Result {
	return validation.Result{Field: field, Code: code, Message: validation.Messages[code]}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
