package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/internal/branding"
	"github.com/goliatone/go-cybertalent/internal/config"
	"github.com/goliatone/go-cybertalent/internal/logging"
	"github.com/goliatone/go-cybertalent/pkg/chatbot"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/renderers/vanilla"
	"github.com/goliatone/go-cybertalent/pkg/site"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cybertalent-site:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	variant := flag.String("theme", cfg.ThemeVariant, "theme variant (light, high-contrast)")
	flag.Parse()
	cfg.Addr = *addr
	cfg.ThemeVariant = *variant

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	themeCfg, err := branding.Resolve(cfg.ThemeVariant)
	if err != nil {
		return err
	}
	landing, err := cfg.Content()
	if err != nil {
		return err
	}
	table, err := cfg.ChatTable()
	if err != nil {
		return err
	}
	fallback, err := language.Parse(cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("default locale: %w", err)
	}
	catalog, err := render.BundledCatalog(fallback)
	if err != nil {
		return err
	}

	renderers, err := site.NewRenderers(vanilla.WithTemplatesDir(cfg.TemplatesDir))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := site.New(ctx,
		site.WithLogger(logger),
		site.WithContent(landing),
		site.WithCatalog(catalog),
		site.WithRenderers(renderers),
		site.WithTheme(themeCfg, branding.Palette(themeCfg)),
		site.WithChatbot(chatbot.New(chatbot.WithTable(table), chatbot.WithDelay(cfg.ChatDelay))),
		site.WithNotifyTTL(cfg.NotifyTTL),
		site.WithModalCloseDelay(cfg.ModalCloseDelay),
	)
	if err != nil {
		return err
	}

	logger.Info("cybertalent site listening",
		zap.String("addr", cfg.Addr),
		zap.String("theme", themeCfg.Theme),
		zap.String("variant", themeCfg.Variant),
		zap.String("locale", fallback.String()),
	)
	return site.ListenAndServe(ctx, cfg.Addr, srv, cfg.ShutdownGrace, logger)
}
