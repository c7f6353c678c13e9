package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gameplan.app/gameplan/common/id"
	"gameplan.app/gameplan/common/logger"
	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/designdoc"
	"gameplan.app/gameplan/internal/model"
	"gameplan.app/gameplan/internal/planner"
	"gameplan.app/gameplan/internal/report"
)

// ErrEmptyDocument is returned when a plan is requested for a document with
// no content at all. Missing sections inside a document are fine; a missing
// document is a caller error.
var ErrEmptyDocument = errors.New("design document is empty")

// PlanService runs the extraction, selection, and reporting pipeline over a
// single document. The catalog is fixed at construction; tests supply their
// own without touching the environment.
type PlanService interface {
	Plan(ctx context.Context, document, text string) (*model.Plan, error)
}

type planService struct {
	catalog catalog.Catalog
}

func NewPlanService(cat catalog.Catalog) PlanService {
	return &planService{catalog: cat}
}

func (s *planService) Plan(ctx context.Context, document, text string) (*model.Plan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	features := designdoc.Extract(text)
	requirements := designdoc.ExtractRequirements(text)

	issues, err := planner.Select(features, s.catalog)
	if err != nil {
		return nil, err
	}

	plan := &model.Plan{
		ID:           id.New(),
		Document:     document,
		Features:     features,
		Requirements: requirements,
		Issues:       issues,
		Report:       report.Build(issues, s.catalog),
		GeneratedAt:  time.Now().UTC(),
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		PlanID:    logger.Ptr(plan.ID),
		Document:  logger.Ptr(document),
		Component: "gameplan.service.plan",
	})
	slog.InfoContext(ctx, "plan generated",
		"total_issues", plan.Report.TotalIssues,
		"ai", features.AI,
		"audio", features.Audio,
		"multiplayer", features.Multiplayer)

	return plan, nil
}
