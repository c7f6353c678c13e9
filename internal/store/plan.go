package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gameplan.app/gameplan/core/db"
	"gameplan.app/gameplan/internal/model"
)

type planStore struct {
	db *db.DB
}

func newPlanStore(database *db.DB) PlanStore {
	return &planStore{db: database}
}

const createPlanSQL = `
INSERT INTO plan_runs (id, document, features, requirements, issues, report, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (s *planStore) Create(ctx context.Context, plan *model.Plan) error {
	featuresJSON, err := json.Marshal(plan.Features)
	if err != nil {
		return fmt.Errorf("marshaling features: %w", err)
	}
	requirementsJSON, err := json.Marshal(plan.Requirements)
	if err != nil {
		return fmt.Errorf("marshaling requirements: %w", err)
	}
	issuesJSON, err := json.Marshal(plan.Issues)
	if err != nil {
		return fmt.Errorf("marshaling issues: %w", err)
	}
	reportJSON, err := json.Marshal(plan.Report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	_, err = s.db.Pool().Exec(ctx, createPlanSQL,
		plan.ID,
		plan.Document,
		featuresJSON,
		requirementsJSON,
		issuesJSON,
		reportJSON,
		plan.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

const getPlanSQL = `
SELECT id, document, features, requirements, issues, report, generated_at
FROM plan_runs
WHERE id = $1
`

func (s *planStore) GetByID(ctx context.Context, id int64) (*model.Plan, error) {
	row := s.db.Pool().QueryRow(ctx, getPlanSQL, id)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

const listPlansSQL = `
SELECT id, document, features, requirements, issues, report, generated_at
FROM plan_runs
ORDER BY id DESC
LIMIT $1
`

func (s *planStore) List(ctx context.Context, limit int32) ([]model.Plan, error) {
	rows, err := s.db.Pool().Query(ctx, listPlansSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

const recordCreatedSQL = `
INSERT INTO created_issues (plan_id, title, body, labels, external_id, web_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// RecordCreated inserts every created issue of one push in a single
// transaction, so run history never shows a half-recorded batch.
func (s *planStore) RecordCreated(ctx context.Context, planID int64, created []model.CreatedIssue) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		for _, c := range created {
			labelsJSON, err := json.Marshal(c.Issue.Labels)
			if err != nil {
				return fmt.Errorf("marshaling labels: %w", err)
			}
			_, err = tx.Exec(ctx, recordCreatedSQL,
				planID,
				c.Issue.Title,
				c.Issue.Body,
				labelsJSON,
				c.ExternalID,
				c.WebURL,
				c.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("inserting created issue: %w", err)
			}
		}
		return nil
	})
}

const listCreatedSQL = `
SELECT title, body, labels, external_id, web_url, created_at
FROM created_issues
WHERE plan_id = $1
ORDER BY created_at
`

func (s *planStore) ListCreated(ctx context.Context, planID int64) ([]model.CreatedIssue, error) {
	rows, err := s.db.Pool().Query(ctx, listCreatedSQL, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var created []model.CreatedIssue
	for rows.Next() {
		var (
			c          model.CreatedIssue
			labelsJSON []byte
		)
		if err := rows.Scan(&c.Issue.Title, &c.Issue.Body, &labelsJSON, &c.ExternalID, &c.WebURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		if len(labelsJSON) > 0 {
			if err := json.Unmarshal(labelsJSON, &c.Issue.Labels); err != nil {
				return nil, err
			}
		}
		created = append(created, c)
	}
	return created, rows.Err()
}

func scanPlan(row pgx.Row) (*model.Plan, error) {
	var (
		plan             model.Plan
		featuresJSON     []byte
		requirementsJSON []byte
		issuesJSON       []byte
		reportJSON       []byte
	)
	if err := row.Scan(&plan.ID, &plan.Document, &featuresJSON, &requirementsJSON, &issuesJSON, &reportJSON, &plan.GeneratedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(featuresJSON, &plan.Features); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(requirementsJSON, &plan.Requirements); err != nil {
		return nil, err
	}
	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &plan.Issues); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(reportJSON, &plan.Report); err != nil {
		return nil, err
	}
	return &plan, nil
}
