package wizard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-cybertalent/pkg/draft"
)

// SuccessMessage is the notice shown after a successful submission.
const SuccessMessage = "Application submitted successfully! We'll review it within 48 hours."

// Submission is a validated application handed to a Submitter.
type Submission struct {
	Reference   string                 `json:"reference"`
	SubmittedAt time.Time              `json:"submittedAt"`
	Draft       draft.ApplicationDraft `json:"draft"`
}

// Submitter receives validated applications.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return fn(ctx, s)
}

// LogSubmitter records submissions as structured log lines. Nothing is sent
// anywhere else.
func LogSubmitter(logger *zap.Logger) Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SubmitterFunc(func(_ context.Context, s Submission) error {
		d := s.Draft
		affordability := make([]string, 0, len(d.Affordability))
		for _, a := range d.Affordability {
			affordability = append(affordability, string(a))
		}
		fields := []zap.Field{
			zap.String("reference", s.Reference),
			zap.Time("submitted_at", s.SubmittedAt),
			zap.String("full_name", d.FullName),
			zap.String("email", d.Email),
			zap.String("experience_level", string(d.ExperienceLevel)),
			zap.Int("motivation_length", len([]rune(d.Motivation))),
			zap.String("start_timeframe", string(d.StartTimeframe)),
			zap.String("funding_status", string(d.FundingStatus)),
			zap.Strings("affordability", affordability),
		}
		if d.StartDateSpecific != "" {
			fields = append(fields, zap.String("start_date", d.StartDateSpecific))
		}
		if d.SponsorshipFile != nil {
			fields = append(fields, zap.String("sponsorship_file", d.SponsorshipFile.Name))
		}
		logger.Info("application submitted", fields...)
		return nil
	})
}
