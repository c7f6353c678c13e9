package model

import "time"

// Plan is the full output of one pipeline run over a single document:
// the extracted feature model, the selected issues, and the report.
// The issue list is ordered and immutable once generated.
type Plan struct {
	ID           int64            `json:"id,string"`
	Document     string           `json:"document,omitempty"`
	Features     FeatureModel     `json:"features"`
	Requirements Requirements     `json:"requirements"`
	Issues       []GeneratedIssue `json:"issues"`
	Report       Report           `json:"report"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
