// Package wizard drives the multi-step application form: forward steps are
// gated by validation, backward steps never are, and submission re-validates
// everything before handing the draft to a Submitter.
package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-cybertalent/pkg/draft"
	"github.com/goliatone/go-cybertalent/pkg/review"
	"github.com/goliatone/go-cybertalent/pkg/validation"
	"github.com/goliatone/go-cybertalent/pkg/visibility"
	"github.com/goliatone/go-cybertalent/pkg/visibility/expr"
)

// State is the controller position. Step is always within
// [0, LastStep()].
type State struct {
	Step int `json:"step"`
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition tracing and, unless
// WithSubmitter is given, for simulated submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSubmitter overrides where validated applications go.
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) {
		c.submitter = s
	}
}

// WithInitialState restores a controller at state with the given draft.
// Restored state is not validated until the next advance or submit.
func WithInitialState(state State, d draft.ApplicationDraft) Option {
	return func(c *Controller) {
		c.state = state
		c.draft = d.Clone()
	}
}

// WithVisibility replaces the conditional field rules and their evaluator.
func WithVisibility(eval visibility.Evaluator, rules visibility.Rules) Option {
	return func(c *Controller) {
		c.evaluator = eval
		c.rules = rules
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithReferences overrides the submission reference generator.
func WithReferences(next func() string) Option {
	return func(c *Controller) {
		c.newReference = next
	}
}

// Controller owns the wizard state and draft for one modal lifecycle. All
// input goes through Dispatch.
type Controller struct {
	mu sync.Mutex

	state   State
	draft   draft.ApplicationDraft
	failure validation.Result
	notice  string
	visible map[string]bool
	summary *review.Summary

	evaluator    visibility.Evaluator
	rules        visibility.Rules
	submitter    Submitter
	logger       *zap.Logger
	now          func() time.Time
	newReference func() string
}

// New constructs a Controller at step 0 with an empty draft unless
// WithInitialState says otherwise.
func New(options ...Option) *Controller {
	c := &Controller{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.submitter == nil {
		c.submitter = LogSubmitter(c.logger)
	}
	if c.evaluator == nil {
		c.evaluator = expr.New()
	}
	if c.rules == nil {
		c.rules = DefaultVisibilityRules()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newReference == nil {
		c.newReference = uuid.NewString
	}
	c.state.Step = clamp(c.state.Step)
	c.failure = validation.Pass()
	c.refreshVisibility()
	if c.state.Step == LastStep() && earlierStepsValid(c.draft) {
		summary := review.Populate(c.draft)
		c.summary = &summary
	}
	return c
}

// earlierStepsValid reports whether d would have been allowed into the review
// step. A restored draft that fails gets no summary until a real advance.
func earlierStepsValid(d draft.ApplicationDraft) bool {
	for step := 0; step < LastStep(); step++ {
		if !validation.ValidateStep(step, d).Valid {
			return false
		}
	}
	return true
}

// Dispatch applies one event and reports the resulting view. Validation
// failures are reported through Outcome.Result; the error is reserved for
// malformed events and submitter failures.
func (c *Controller) Dispatch(ctx context.Context, event Event) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.notice = ""
	switch event.Kind {
	case EventFieldChange:
		if err := c.change(event); err != nil {
			return c.outcome(), err
		}
		c.failure = validation.Pass()
		c.refreshVisibility()
	case EventStepNext:
		if err := c.applyForm(event); err != nil {
			return c.outcome(), err
		}
		c.advance()
	case EventStepBack:
		if err := c.applyForm(event); err != nil {
			return c.outcome(), err
		}
		c.retreat()
	case EventSubmit:
		if err := c.applyForm(event); err != nil {
			return c.outcome(), err
		}
		return c.submit(ctx)
	default:
		return c.outcome(), fmt.Errorf("%w: %q", ErrUnknownEvent, event.Kind)
	}
	return c.outcome(), nil
}

// Reset returns to step 0 with an empty draft, no message and no revealed
// conditional fields.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// State returns the current position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the collected answers.
func (c *Controller) Draft() draft.ApplicationDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// View returns the current display state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// Summary returns the review summary while on the review step.
func (c *Controller) Summary() (review.Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.summary == nil {
		return review.Summary{}, false
	}
	return *c.summary, true
}

func (c *Controller) change(event Event) error {
	switch {
	case event.Field == draft.FieldAffordability && event.Checked != nil:
		if err := c.draft.ToggleAffordability(draft.Affordability(event.Value), *event.Checked); err != nil {
			return fmt.Errorf("wizard: field change: %w", err)
		}
	case event.Field == draft.FieldSponsorshipFile && event.Attachment != nil:
		file := *event.Attachment
		c.draft.SponsorshipFile = &file
	default:
		if err := c.draft.Set(event.Field, event.Value); err != nil {
			return fmt.Errorf("wizard: field change: %w", err)
		}
	}
	return nil
}

func (c *Controller) applyForm(event Event) error {
	if event.Values == nil && event.Attachment == nil {
		return nil
	}
	if err := c.draft.Apply(event.Values); err != nil {
		return fmt.Errorf("wizard: apply form: %w", err)
	}
	if event.Values != nil {
		for _, field := range steps[c.state.Step].Fields {
			if omittedWhenEmpty(field) && !event.Values.Has(field) {
				if err := c.draft.Set(field, ""); err != nil {
					return fmt.Errorf("wizard: apply form: %w", err)
				}
			}
		}
	}
	if event.Attachment != nil {
		file := *event.Attachment
		c.draft.SponsorshipFile = &file
	}
	c.refreshVisibility()
	return nil
}

func (c *Controller) advance() {
	from := c.state.Step
	res := validation.ValidateStep(from, c.draft)
	if !res.Valid {
		c.failure = res
		c.logger.Debug("wizard step blocked",
			zap.Int("step", from),
			zap.String("field", res.Field),
			zap.String("code", res.Code),
		)
		return
	}

	c.failure = res
	c.state.Step = clamp(from + 1)
	if c.state.Step == LastStep() {
		summary := review.Populate(c.draft)
		c.summary = &summary
	}
	c.logger.Debug("wizard advanced", zap.Int("from", from), zap.Int("to", c.state.Step))
}

func (c *Controller) retreat() {
	from := c.state.Step
	c.state.Step = clamp(from - 1)
	c.failure = validation.Pass()
	if c.state.Step != LastStep() {
		c.summary = nil
	}
	c.logger.Debug("wizard retreated", zap.Int("from", from), zap.Int("to", c.state.Step))
}

func (c *Controller) submit(ctx context.Context) (Outcome, error) {
	step, res := validation.ValidateSubmission(c.draft)
	if !res.Valid {
		c.state.Step = step
		c.failure = res
		if step != LastStep() {
			c.summary = nil
		}
		c.logger.Debug("wizard submission blocked",
			zap.Int("step", step),
			zap.String("code", res.Code),
		)
		return c.outcome(), nil
	}

	submission := Submission{
		Reference:   c.newReference(),
		SubmittedAt: c.now(),
		Draft:       c.draft.Clone(),
	}
	if err := c.submitter.Submit(ctx, submission); err != nil {
		return c.outcome(), fmt.Errorf("wizard: submit %s: %w", submission.Reference, err)
	}

	c.reset()
	c.notice = SuccessMessage
	out := c.outcome()
	out.Submission = &submission
	return out, nil
}

func (c *Controller) reset() {
	c.state = State{}
	c.draft = draft.ApplicationDraft{}
	c.failure = validation.Pass()
	c.notice = ""
	c.visible = nil
	c.summary = nil
}

func (c *Controller) refreshVisibility() {
	visible, err := visibility.Resolve(c.evaluator, c.rules, visibility.Context{Values: c.draft.Values()})
	if err != nil {
		c.logger.Warn("wizard visibility rule failed", zap.Error(err))
	}
	c.visible = visible
}

func (c *Controller) view() View {
	return buildView(c.state.Step, c.visible, c.failure, c.notice)
}

func (c *Controller) outcome() Outcome {
	out := Outcome{View: c.view(), Result: c.failure}
	if c.summary != nil && c.state.Step == LastStep() {
		summary := *c.summary
		out.Summary = &summary
	}
	return out
}

func clamp(step int) int {
	if step < 0 {
		return 0
	}
	if last := LastStep(); step > last {
		return last
	}
	return step
}
