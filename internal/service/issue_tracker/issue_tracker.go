// Package issue_tracker wraps the remote tracker the generated backlog is
// pushed to. The pipeline only ever hands it plain issue records and reads
// back remote identifiers or per-item failures.
package issue_tracker

import (
	"context"

	"gameplan.app/gameplan/internal/model"
)

// Label describes a tracker label to create or update.
type Label struct {
	Name        string
	Color       string // six hex digits, no leading '#'
	Description string
}

// Milestone describes a tracker milestone to create when absent.
type Milestone struct {
	Title       string
	Description string
}

// IssueTracker is the remote collaborator. Creation of a single issue is
// independent and safe to attempt again; batching, throttling, and failure
// tolerance live in the push service, not here.
type IssueTracker interface {
	CreateIssue(ctx context.Context, issue model.GeneratedIssue) (*model.CreatedIssue, error)
	EnsureLabels(ctx context.Context, labels []Label) (created, updated int, err error)
	EnsureMilestones(ctx context.Context, milestones []Milestone) (created int, err error)
}

// StandardLabels is the label set aligned with the catalog categories,
// created or updated by `gameplan setup`.
func StandardLabels() []Label {
	return []Label{
		{Name: "enhancement", Color: "a2eeef", Description: "New feature or request"},
		{Name: "bug", Color: "d73a4a", Description: "Something isn't working"},
		{Name: "programming", Color: "0e8a16", Description: "Programming and technical implementation"},
		{Name: "core-mechanics", Color: "5319e7", Description: "Core gameplay systems"},
		{Name: "ai", Color: "bfdadc", Description: "AI and agent behavior"},
		{Name: "ui", Color: "fbca04", Description: "Interface and user experience"},
		{Name: "art", Color: "f9d0c4", Description: "Visual art and graphics"},
		{Name: "graphics", Color: "c2e0c6", Description: "Rendering and visual effects"},
		{Name: "audio", Color: "d4c5f9", Description: "Sound effects and music"},
		{Name: "level-design", Color: "1d76db", Description: "Level layout and scripting"},
		{Name: "progression", Color: "0052cc", Description: "Player progression systems"},
		{Name: "multiplayer", Color: "b60205", Description: "Networking and multiplayer"},
		{Name: "qa", Color: "ededed", Description: "Quality assurance and testing"},
		{Name: "polish", Color: "ff69b4", Description: "Optimization and release polish"},
		{Name: "business", Color: "006b75", Description: "Business and release operations"},
	}
}

// StandardMilestones derives one milestone per catalog category display
// name, in the given order.
func StandardMilestones(names []string) []Milestone {
	milestones := make([]Milestone, 0, len(names))
	for _, name := range names {
		milestones = append(milestones, Milestone{
			Title:       name,
			Description: name + " work for the generated project plan",
		})
	}
	return milestones
}
