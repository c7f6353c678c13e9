package store

import (
	"context"
	"errors"

	"gameplan.app/gameplan/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// PlanStore defines the contract for plan run data access
type PlanStore interface {
	Create(ctx context.Context, plan *model.Plan) error
	GetByID(ctx context.Context, id int64) (*model.Plan, error)
	List(ctx context.Context, limit int32) ([]model.Plan, error)
	RecordCreated(ctx context.Context, planID int64, created []model.CreatedIssue) error
	ListCreated(ctx context.Context, planID int64) ([]model.CreatedIssue, error)
}
