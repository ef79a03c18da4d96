package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/language"

	"github.com/goliatone/go-cybertalent/internal/config"
	"github.com/goliatone/go-cybertalent/internal/logging"
	"github.com/goliatone/go-cybertalent/pkg/content"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/renderers/tui"
	"github.com/goliatone/go-cybertalent/pkg/reveal"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "application cancelled")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "cybertalent-apply:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lang := flag.String("lang", cfg.DefaultLocale, "prompt language (en, de)")
	format := flag.String("format", string(tui.OutputFormatPrettyText), "output format: pretty or json")
	output := flag.String("output", "", "output file (stdout if empty)")
	intro := flag.Bool("intro", true, "show the programme stats before the form")
	flag.Parse()

	if *format != string(tui.OutputFormatPrettyText) && *format != string(tui.OutputFormatJSON) {
		return fmt.Errorf("unknown format %q", *format)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := render.DefaultCatalog()
	if err != nil {
		return err
	}
	locale := catalog.Match(*lang)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *intro {
		landing, err := cfg.Content()
		if err != nil {
			return err
		}
		if err := showStats(ctx, os.Stderr, landing.Stats, locale); err != nil {
			return err
		}
	}

	runner := tui.New(
		tui.WithController(wizard.New(
			wizard.WithLogger(logger),
			wizard.WithSubmitter(wizard.LogSubmitter(logger)),
		)),
		tui.WithTranslator(catalog, locale.String()),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
	)
	submission, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	out, err := runner.Output(submission)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Application written to %s\n", *output)
	return nil
}

// showStats counts each numeric stat up to its value, rewriting one line per
// stat. Stats without a number are printed as they are.
func showStats(ctx context.Context, w io.Writer, stats []content.Stat, locale language.Tag) error {
	for _, stat := range stats {
		target, ok := reveal.ParseTarget(stat.Value)
		if !ok {
			fmt.Fprintf(w, "%s  %s\n", stat.Value, stat.Label)
			continue
		}
		err := reveal.Animate(ctx, target, locale, func(frame string) {
			fmt.Fprintf(w, "\r%s  %s", frame, stat.Label)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\r%s  %s\n", stat.Value, stat.Label)
	}
	return nil
}
