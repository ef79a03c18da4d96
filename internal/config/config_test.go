package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "console",
		ChatDelay:       time.Second,
		NotifyTTL:       5 * time.Second,
		ModalCloseDelay: 2 * time.Second,
		DefaultLocale:   "en",
		ShutdownGrace:   10 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CT_ADDR":          "127.0.0.1:9000",
		"CT_LOG_FORMAT":    "json",
		"CT_CHAT_DELAY":    "250ms",
		"CT_THEME_VARIANT": "dark",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.LogFormat != "json" || cfg.ChatDelay != 250*time.Millisecond || cfg.ThemeVariant != "dark" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"parse env:":    {"CT_NOTIFY_TTL": "soon"},
		"CT_LOG_FORMAT": {"CT_LOG_FORMAT": "xml"},
		"CT_LOG_LEVEL":  {"CT_LOG_LEVEL": "loud"},
		"CT_CHAT_DELAY": {"CT_CHAT_DELAY": "-1s"},
	}
	for fragment, environ := range cases {
		_, err := LoadFrom(environ)
		if err == nil {
			t.Fatalf("%v: expected error", environ)
		}
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %v", fragment, err)
		}
	}
}

func TestContentAndChatTableFallBack(t *testing.T) {
	cfg := Config{}
	landing, err := cfg.Content()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if landing.Hero.Title == "" {
		t.Fatalf("expected bundled hero copy")
	}
	table, err := cfg.ChatTable()
	if err != nil {
		t.Fatalf("chat table: %v", err)
	}
	if table.Respond("how do I apply?") == table.Respond("asdf1234") {
		t.Fatalf("expected the bundled table to know about applying")
	}
}

func TestChatTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.yaml")
	data := "default: Ask me about the course.\nentries:\n  - keywords: [price]\n    response: It is free.\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := Config{ChatTablePath: path}.ChatTable()
	if err != nil {
		t.Fatalf("chat table: %v", err)
	}
	if got := table.Respond("What is the PRICE?"); got != "It is free." {
		t.Fatalf("unexpected reply %q", got)
	}

	if _, err := (Config{ChatTablePath: filepath.Join(t.TempDir(), "missing.yaml")}).ChatTable(); err == nil {
		t.Fatalf("expected read error")
	}
}
