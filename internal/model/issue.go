package model

import "time"

// GeneratedIssue is an issue template materialized into a plan. Fields are
// copied verbatim from the template; the struct carries no identity of its
// own until the tracker assigns one.
type GeneratedIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// CreatedIssue records a successful creation on the remote tracker. The
// external identifier is opaque to the pipeline; it is only reported back.
type CreatedIssue struct {
	Issue      GeneratedIssue `json:"issue"`
	ExternalID int64          `json:"external_id"`
	WebURL     string         `json:"web_url,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CreationFailure records a per-item remote failure. Failures never abort
// the batch; they are collected and reported alongside the successes.
type CreationFailure struct {
	Issue  GeneratedIssue `json:"issue"`
	Reason string         `json:"reason"`
}

// Report is a read-only projection over a generated issue list.
type Report struct {
	TotalIssues int `json:"total_issues"`

	// ByCategory maps category display names to the count of issues whose
	// title appears among that category's templates. First matching category
	// wins; categories with zero matches are omitted.
	ByCategory map[string]int `json:"by_category"`

	// ByLabel counts label occurrences across all issues. An issue with N
	// labels contributes to N counters.
	ByLabel map[string]int `json:"by_label"`
}
