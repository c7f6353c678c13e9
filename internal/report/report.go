// Package report computes aggregate projections over a generated issue
// list. Building a report has no side effects and is recomputable: the same
// issues and catalog always produce the same report.
package report

import (
	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/model"
)

// Build summarizes issues by category and by label.
//
// Category counts key on display name and rely on title membership in the
// catalog (first matching category wins); categories with no matching issue
// are absent from the map rather than present with zero. Label counts tally
// every label occurrence, so their sum equals the total number of labels
// attached across all issues, not the issue count.
func Build(issues []model.GeneratedIssue, cat catalog.Catalog) model.Report {
	r := model.Report{
		TotalIssues: len(issues),
		ByCategory:  map[string]int{},
		ByLabel:     map[string]int{},
	}

	for _, issue := range issues {
		if category, ok := cat.ClassifyTitle(issue.Title); ok {
			r.ByCategory[category.Name]++
		}
		for _, label := range issue.Labels {
			r.ByLabel[label]++
		}
	}

	return r
}
