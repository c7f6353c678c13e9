package service

import (
	"context"
	"log/slog"
	"time"

	"gameplan.app/gameplan/common/logger"
	"gameplan.app/gameplan/internal/model"
	"gameplan.app/gameplan/internal/service/issue_tracker"
)

// DefaultCreateDelay is the minimum pause between successive creation calls.
// The remote tracker is rate limited; creation is deliberately sequential
// and throttled rather than parallel, which also keeps creation order
// deterministic in the tracker and in logs.
const DefaultCreateDelay = 500 * time.Millisecond

// PushService sends generated issues to the tracker one at a time. A failed
// item is recorded and skipped; the batch always runs to the end.
type PushService interface {
	Push(ctx context.Context, issues []model.GeneratedIssue) ([]model.CreatedIssue, []model.CreationFailure, error)
}

type pushService struct {
	tracker issue_tracker.IssueTracker
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

// PushOption tweaks push behavior. Only tests should need these.
type PushOption func(*pushService)

// WithDelay overrides the inter-call delay.
func WithDelay(d time.Duration) PushOption {
	return func(s *pushService) { s.delay = d }
}

// WithSleeper replaces the delay function, letting tests observe throttling
// without waiting on a real clock.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) PushOption {
	return func(s *pushService) { s.sleep = sleep }
}

func NewPushService(tracker issue_tracker.IssueTracker, opts ...PushOption) PushService {
	s := &pushService{
		tracker: tracker,
		delay:   DefaultCreateDelay,
		sleep:   sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push creates the issues strictly in order with the configured delay
// between calls (none before the first). Per-item failures are logged with
// the issue title and reason and collected; only context expiry ends the
// batch early, returning whatever completed plus the context error.
func (s *pushService) Push(ctx context.Context, issues []model.GeneratedIssue) ([]model.CreatedIssue, []model.CreationFailure, error) {
	sc := logger.StartSpan(ctx, "gameplan.push")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		Component: "gameplan.service.push",
	})

	created := []model.CreatedIssue{}
	failed := []model.CreationFailure{}

	for i, issue := range issues {
		if i > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				sc.RecordError(err)
				slog.WarnContext(ctx, "push interrupted",
					"created", len(created), "failed", len(failed), "remaining", len(issues)-i)
				return created, failed, err
			}
		}

		itemCtx := logger.WithLogFields(ctx, logger.LogFields{
			IssueTitle: logger.Ptr(issue.Title),
		})
		result, err := s.tracker.CreateIssue(itemCtx, issue)
		if err != nil {
			sc.RecordError(err)
			slog.WarnContext(itemCtx, "issue creation failed", "error", err)
			failed = append(failed, model.CreationFailure{Issue: issue, Reason: err.Error()})
			continue
		}

		created = append(created, *result)
		slog.InfoContext(itemCtx, "issue created", "external_id", result.ExternalID)
	}

	slog.InfoContext(ctx, "push complete",
		"requested", len(issues), "created", len(created), "failed", len(failed))
	return created, failed, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
