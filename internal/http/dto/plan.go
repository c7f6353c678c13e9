package dto

import (
	"time"

	"gameplan.app/gameplan/internal/model"
)

type CreatePlanRequest struct {
	Document string `json:"document" binding:"required,min=1,max=255"`
	Text     string `json:"text" binding:"required,min=1"`
}

type PlanResponse struct {
	ID           int64                  `json:"id,string"`
	Document     string                 `json:"document"`
	Features     model.FeatureModel     `json:"features"`
	Requirements model.Requirements     `json:"requirements"`
	Issues       []model.GeneratedIssue `json:"issues"`
	Report       model.Report           `json:"report"`
	GeneratedAt  time.Time              `json:"generated_at"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

type PushResponse struct {
	PlanID  int64                   `json:"plan_id,string"`
	Created []model.CreatedIssue    `json:"created"`
	Failed  []model.CreationFailure `json:"failed"`
}

type CreatedIssuesResponse struct {
	PlanID int64                `json:"plan_id,string"`
	Issues []model.CreatedIssue `json:"issues"`
}

func ToPlanResponse(p *model.Plan) *PlanResponse {
	return &PlanResponse{
		ID:           p.ID,
		Document:     p.Document,
		Features:     p.Features,
		Requirements: p.Requirements,
		Issues:       p.Issues,
		Report:       p.Report,
		GeneratedAt:  p.GeneratedAt,
	}
}

func ToPlanListResponse(plans []model.Plan) *PlanListResponse {
	out := PlanListResponse{Plans: []PlanResponse{}}
	for i := range plans {
		out.Plans = append(out.Plans, *ToPlanResponse(&plans[i]))
	}
	return &out
}
