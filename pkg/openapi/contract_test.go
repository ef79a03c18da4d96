package openapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustContract(t *testing.T) *Contract {
	t.Helper()
	c, err := Default(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	return c
}

func jsonRequest(path, body string, csrf bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if csrf {
		req.Header.Set("X-CSRF-Token", "token")
	}
	return req
}

func TestDefaultOperations(t *testing.T) {
	c := mustContract(t)

	want := []Operation{
		{ID: "chatMessage", Method: "POST", Path: "/api/chat"},
		{ID: "contactMessage", Method: "POST", Path: "/api/contact"},
		{ID: "keyPress", Method: "POST", Path: "/api/keys"},
		{ID: "scroll", Method: "POST", Path: "/api/scroll"},
		{ID: "wizardEvent", Method: "POST", Path: "/api/wizard/events"},
		{ID: "health", Method: "GET", Path: "/healthz"},
	}
	if diff := cmp.Diff(want, c.Operations()); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(c.Raw()), "openapi: 3.0.3") {
		t.Fatalf("raw document not kept")
	}
	if c.Title() == "" {
		t.Fatalf("expected a title")
	}
}

func TestValidateRequest(t *testing.T) {
	c := mustContract(t)

	cases := []struct {
		name   string
		req    *http.Request
		ok     bool
		reason string
	}{
		{
			name: "wizard event",
			req:  jsonRequest("/api/wizard/events", `{"event":"field-change","field":"email","value":"ada@example.com"}`, true),
			ok:   true,
		},
		{
			name: "wizard form values",
			req:  jsonRequest("/api/wizard/events", `{"event":"step-next","values":{"fullName":["Ada"],"affordability":["travel","equipment"]}}`, true),
			ok:   true,
		},
		{
			name:   "unknown wizard event",
			req:    jsonRequest("/api/wizard/events", `{"event":"jump"}`, true),
			reason: "body event",
		},
		{
			name:   "missing csrf header",
			req:    jsonRequest("/api/keys", `{"key":"Escape"}`, false),
			reason: "parameter X-CSRF-Token",
		},
		{
			name:   "empty chat message",
			req:    jsonRequest("/api/chat", `{"message":""}`, true),
			reason: "body message",
		},
		{
			name:   "contact without email",
			req:    jsonRequest("/api/contact", `{"name":"Ada","message":"Hi"}`, true),
			reason: "body",
		},
		{
			name: "scroll",
			req:  jsonRequest("/api/scroll", `{"y":120,"sections":[{"id":"home","top":0,"height":800}]}`, true),
			ok:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.ValidateRequest(context.Background(), tc.req)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected valid request, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if got := Reason(err); !strings.HasPrefix(got, tc.reason) {
				t.Fatalf("reason %q does not start with %q", got, tc.reason)
			}
		})
	}
}

func TestValidateRequestRestoresBody(t *testing.T) {
	c := mustContract(t)
	body := `{"message":"how do I apply?"}`
	req := jsonRequest("/api/chat", body, true)
	if err := c.ValidateRequest(context.Background(), req); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != body {
		t.Fatalf("body not restored, got %q", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	c := mustContract(t)
	req := httptest.NewRequest(http.MethodPost, "/apply", nil)
	if c.Describes(req) {
		t.Fatalf("form endpoints are not part of the contract")
	}
	err := c.ValidateRequest(context.Background(), req)
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
	if Reason(err) != "unknown endpoint" {
		t.Fatalf("unexpected reason %q", Reason(err))
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
	if _, err := Load(context.Background(), []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n")); err == nil {
		t.Fatalf("expected missing paths error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, bundled); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
