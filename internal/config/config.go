// Package config reads the site and terminal settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/content"
)

// Config holds every knob the binaries expose. Durations accept Go duration
// strings ("900ms", "5s").
type Config struct {
	Addr            string        `env:"CT_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"CT_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"CT_LOG_FORMAT" envDefault:"console"`
	ContentPath     string        `env:"CT_CONTENT_PATH"`
	ChatTablePath   string        `env:"CT_CHAT_TABLE_PATH"`
	ChatDelay       time.Duration `env:"CT_CHAT_DELAY" envDefault:"1s"`
	NotifyTTL       time.Duration `env:"CT_NOTIFY_TTL" envDefault:"5s"`
	ModalCloseDelay time.Duration `env:"CT_MODAL_CLOSE_DELAY" envDefault:"2s"`
	ThemeVariant    string        `env:"CT_THEME_VARIANT"`
	TemplatesDir    string        `env:"CT_TEMPLATES_DIR"`
	DefaultLocale   string        `env:"CT_DEFAULT_LOCALE" envDefault:"en"`
	ShutdownGrace   time.Duration `env:"CT_SHUTDOWN_GRACE" envDefault:"10s"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the binaries cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("config: CT_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: CT_LOG_LEVEL %q is not a level", c.LogLevel)
	}
	for name, d := range map[string]time.Duration{
		"CT_CHAT_DELAY":        c.ChatDelay,
		"CT_NOTIFY_TTL":        c.NotifyTTL,
		"CT_MODAL_CLOSE_DELAY": c.ModalCloseDelay,
		"CT_SHUTDOWN_GRACE":    c.ShutdownGrace,
	} {
		if d < 0 {
			return fmt.Errorf("config: %s must not be negative", name)
		}
	}
	return nil
}

// Content loads the landing copy, falling back to the bundled copy.
func (c Config) Content() (content.Landing, error) {
	return content.Load(c.ContentPath)
}

// ChatTable loads the chatbot keyword table, falling back to the bundled one.
func (c Config) ChatTable() (chatbot.Table, error) {
	if strings.TrimSpace(c.ChatTablePath) == "" {
		return chatbot.DefaultTable(), nil
	}
	data, err := os.ReadFile(c.ChatTablePath)
	if err != nil {
		return chatbot.Table{}, fmt.Errorf("config: read chat table: %w", err)
	}
	return chatbot.ParseTable(data)
}
