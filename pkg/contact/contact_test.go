package contact_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cybertalent/pkg/contact"
	"github.com/goliatone/go-cybertalent/pkg/validation"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		msg  contact.Message
		want string
	}{
		{"missing name", contact.Message{Email: "a@b.co", Message: "hi"}, "Please fill in all required fields"},
		{"missing message", contact.Message{Name: "Ada", Email: "a@b.co", Message: "  "}, "Please fill in all required fields"},
		{"presence before shape", contact.Message{Name: "Ada", Email: "nope"}, "Please fill in all required fields"},
		{"bad email", contact.Message{Name: "Ada", Email: "nope", Message: "hi"}, "Please enter a valid email address"},
		{"valid", contact.Message{Name: "Ada", Email: "a@b.co", Message: "hi"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := contact.Validate(tc.msg).Message; got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSubmitDeliversValidMessages(t *testing.T) {
	var delivered []contact.Message
	form := contact.New(contact.WithSink(contact.SinkFunc(func(_ context.Context, ref string, m contact.Message) error {
		if ref == "" {
			t.Fatalf("reference should be set")
		}
		delivered = append(delivered, m)
		return nil
	})))

	msg := contact.FromForm(url.Values{"name": {"Ada"}, "email": {" ada@example.com "}, "message": {"Hello"}})
	receipt, res, err := form.Submit(context.Background(), msg)
	if err != nil || !res.Valid {
		t.Fatalf("submit: %+v %v", res, err)
	}
	if receipt.Notice != contact.SuccessMessage {
		t.Fatalf("unexpected notice %q", receipt.Notice)
	}
	want := []contact.Message{{Name: "Ada", Email: "ada@example.com", Message: "Hello"}}
	if diff := cmp.Diff(want, delivered); diff != "" {
		t.Fatalf("delivered mismatch (-want +got):\n%s", diff)
	}

	_, res, err = form.Submit(context.Background(), contact.Message{})
	if err != nil || res.Code != validation.CodeContactFieldsRequired || len(delivered) != 1 {
		t.Fatalf("invalid message should not be delivered: %+v %v", res, err)
	}
}

func TestSubmitSinkFailure(t *testing.T) {
	boom := errors.New("boom")
	form := contact.New(contact.WithSink(contact.SinkFunc(func(context.Context, string, contact.Message) error { return boom })))
	_, _, err := form.Submit(context.Background(), contact.Message{Name: "Ada", Email: "a@b.co", Message: "hi"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
}
