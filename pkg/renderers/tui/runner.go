package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goliatone/go-cybertalent/pkg/a11y"
	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/render"
	"github.com/goliatone/go-cybertalent/pkg/review"
	"github.com/goliatone/go-cybertalent/pkg/validation"
	"github.com/goliatone/go-cybertalent/pkg/wizard"
)

// Runner walks a visitor through the application wizard in a terminal. Every
// answer is dispatched to the wizard controller as a field change, so the
// terminal flow follows exactly the rules of the page.
type Runner struct {
	driver       PromptDriver
	controller   *wizard.Controller
	outputFormat OutputFormat
	translator   render.Translator
	locale       string
	theme        Theme
}

// New constructs a Runner. Without WithPromptDriver it prompts on the
// process terminal.
func New(options ...Option) *Runner {
	r := &Runner{
		outputFormat: OutputFormatPrettyText,
		theme:        DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.controller == nil {
		r.controller = wizard.New()
	}
	return r
}

// Controller exposes the wizard being driven.
func (r *Runner) Controller() *wizard.Controller {
	return r.controller
}

// Run prompts step by step until a submission is accepted. Validation
// failures are printed and the failing step is asked again.
func (r *Runner) Run(ctx context.Context) (*wizard.Submission, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view := r.controller.View()
		header := fmt.Sprintf("[%d/%d] %s", view.Step+1, view.StepCount, r.tr(render.StepKey(view.Step), view.Title))
		if err := r.info(ctx, header); err != nil {
			return nil, err
		}

		if err := r.promptStep(ctx, view.Step); err != nil {
			return nil, err
		}
		kind, err := r.chooseAction(ctx, r.controller.View())
		if err != nil {
			return nil, err
		}

		out, err := r.controller.Dispatch(ctx, wizard.Event{Kind: kind})
		if err != nil {
			return nil, err
		}
		if out.Submission != nil {
			if err := r.info(ctx, r.tr(render.KeyWizardSubmitted, out.View.Notice)); err != nil {
				return nil, err
			}
			return out.Submission, nil
		}
		if !out.Result.Valid {
			msg := r.tr(render.ValidationKey(out.Result.Code), out.Result.Message)
			if err := r.info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return nil, err
			}
		}
	}
}

// Output serializes an accepted submission in the configured format.
func (r *Runner) Output(sub *wizard.Submission) ([]byte, error) {
	if sub == nil {
		return nil, fmt.Errorf("tui: no submission")
	}
	switch r.outputFormat {
	case OutputFormatJSON:
		return json.MarshalIndent(sub, "", "  ")
	case OutputFormatPrettyText:
		var b strings.Builder
		fmt.Fprintf(&b, "Reference: %s\n", sub.Reference)
		b.WriteString(r.summaryText(review.Populate(sub.Draft)))
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
}

func (r *Runner) promptStep(ctx context.Context, step int) error {
	d := r.controller.Draft()
	switch step {
	case 0:
		if err := r.input(ctx, draft.FieldFullName, "Full name", d.FullName, ""); err != nil {
			return err
		}
		if err := r.input(ctx, draft.FieldEmail, "Email", d.Email, ""); err != nil {
			return err
		}
		return r.input(ctx, draft.FieldPhone, "Phone", d.Phone, "Optional")
	case 1:
		if err := r.choose(ctx, draft.FieldExperienceLevel, "Experience", draft.ExperienceOptions, string(d.ExperienceLevel)); err != nil {
			return err
		}
		motivation, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: r.tr(render.FieldKey(draft.FieldMotivation), "Motivation"),
			Default: d.Motivation,
		})
		if err != nil {
			return err
		}
		if err := r.change(ctx, wizard.Change(draft.FieldMotivation, motivation)); err != nil {
			return err
		}
		if err := r.info(ctx, r.counterText(a11y.MotivationCounter(motivation))); err != nil {
			return err
		}
		if err := r.choose(ctx, draft.FieldStartTimeframe, "Preferred start", draft.StartOptions, string(d.StartTimeframe)); err != nil {
			return err
		}
		if r.controller.View().Shows(draft.FieldStartDateSpecific) {
			return r.input(ctx, draft.FieldStartDateSpecific, "Start date", d.StartDateSpecific, "YYYY-MM-DD")
		}
		return nil
	case 2:
		if err := r.choose(ctx, draft.FieldFundingStatus, "Funding", draft.FundingOptions, string(d.FundingStatus)); err != nil {
			return err
		}
		view := r.controller.View()
		if view.Shows(draft.FieldSponsorshipDetails) {
			details, err := r.driver.TextArea(ctx, TextAreaConfig{
				Message: r.tr(render.FieldKey(draft.FieldSponsorshipDetails), "Sponsorship details"),
				Default: d.SponsorshipDetails,
			})
			if err != nil {
				return err
			}
			if err := r.change(ctx, wizard.Change(draft.FieldSponsorshipDetails, details)); err != nil {
				return err
			}
		}
		if view.Shows(draft.FieldSponsorshipFile) {
			if err := r.attachment(ctx, d.SponsorshipFile); err != nil {
				return err
			}
		}
		return r.affordability(ctx, d)
	default:
		summary, _ := r.controller.Summary()
		if err := r.info(ctx, r.summaryText(summary)); err != nil {
			return err
		}
		if err := r.confirm(ctx, draft.FieldConsent, "I consent to my data being processed for this application", d.Consent); err != nil {
			return err
		}
		return r.confirm(ctx, draft.FieldDeclaration, "I confirm the information provided is accurate", d.Declaration)
	}
}

func (r *Runner) chooseAction(ctx context.Context, view wizard.View) (wizard.EventKind, error) {
	if view.First {
		return wizard.EventStepNext, nil
	}
	forward, forwardKind := r.tr("wizard.next", "Next"), wizard.EventStepNext
	if view.Last {
		forward, forwardKind = r.tr("wizard.submit", "Submit application"), wizard.EventSubmit
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: view.Title,
		Options: []string{forward, r.tr("wizard.back", "Back")},
	})
	if err != nil {
		return "", err
	}
	switch idx {
	case 0:
		return forwardKind, nil
	case 1:
		return wizard.EventStepBack, nil
	}
	return "", ErrNoSelection
}

func (r *Runner) input(ctx context.Context, field, label, current, help string) error {
	value, err := r.driver.Input(ctx, InputConfig{
		Message: r.tr(render.FieldKey(field), label),
		Default: current,
		Help:    help,
	})
	if err != nil {
		return err
	}
	return r.change(ctx, wizard.Change(field, value))
}

func (r *Runner) choose(ctx context.Context, field, label string, options []draft.Option, current string) error {
	labels := make([]string, len(options))
	def := 0
	for i, o := range options {
		labels[i] = r.tr(render.OptionKey(o.Value), o.Label)
		if o.Value == current {
			def = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.tr(render.FieldKey(field), label),
		Options:      labels,
		DefaultIndex: def,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return ErrNoSelection
	}
	return r.change(ctx, wizard.Change(field, options[idx].Value))
}

func (r *Runner) affordability(ctx context.Context, d draft.ApplicationDraft) error {
	labels := make([]string, len(draft.AffordabilityOptions))
	var defaults []int
	for i, o := range draft.AffordabilityOptions {
		labels[i] = r.tr(render.OptionKey(o.Value), o.Label)
		if d.HasAffordability(draft.Affordability(o.Value)) {
			defaults = append(defaults, i)
		}
	}
	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  r.tr(render.FieldKey(draft.FieldAffordability), "Affordability"),
		Options:  labels,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	values := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(draft.AffordabilityOptions) {
			values = append(values, draft.AffordabilityOptions[idx].Value)
		}
	}
	return r.change(ctx, wizard.Change(draft.FieldAffordability, strings.Join(values, ",")))
}

func (r *Runner) attachment(ctx context.Context, current *draft.Attachment) error {
	def := ""
	if current != nil {
		def = current.Name
	}
	path, err := r.driver.Input(ctx, InputConfig{
		Message: r.tr(render.FieldKey(draft.FieldSponsorshipFile), "Supporting document"),
		Default: def,
		Help:    "Path to a PDF or DOCX file, optional",
	})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return r.change(ctx, wizard.Change(draft.FieldSponsorshipFile, ""))
	}
	file := draft.Attachment{Name: filepath.Base(path)}
	if info, err := os.Stat(path); err == nil {
		file.Size = info.Size()
	}
	return r.change(ctx, wizard.Event{Kind: wizard.EventFieldChange, Field: draft.FieldSponsorshipFile, Attachment: &file})
}

func (r *Runner) confirm(ctx context.Context, field, label string, current bool) error {
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.tr(render.FieldKey(field), label),
		Default: current,
	})
	if err != nil {
		return err
	}
	return r.change(ctx, wizard.Change(field, strconv.FormatBool(ok)))
}

func (r *Runner) change(ctx context.Context, event wizard.Event) error {
	_, err := r.controller.Dispatch(ctx, event)
	return err
}

func (r *Runner) summaryText(s review.Summary) string {
	var b strings.Builder
	for _, section := range s.Sections {
		fmt.Fprintf(&b, "\n%s\n", r.tr(render.StepKey(section.Step), section.Title))
		for _, item := range section.Items {
			value := item.Value
			if value == review.NotProvided {
				value = r.tr(render.KeyReviewNotProvided, value)
			}
			fmt.Fprintf(&b, "  %s: %s\n", r.tr(render.FieldKey(item.Field), item.Label), value)
		}
	}
	return b.String()
}

func (r *Runner) counterText(c a11y.Counter) string {
	if c.Satisfied {
		return r.tr(render.KeyCounter, c.Text, c.Length)
	}
	return r.tr(render.KeyCounterMinimum, c.Text, c.Length, validation.MinMotivationLength)
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) tr(key, fallback string, args ...any) string {
	return render.Text(r.translator, r.locale, key, fallback, args...)
}
