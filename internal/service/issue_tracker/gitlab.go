package issue_tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gameplan.app/gameplan/internal/model"
)

// GitLabConfig carries what the client needs to talk to one project.
// Project accepts either a numeric ID or a "namespace/project" path.
type GitLabConfig struct {
	BaseURL string // empty for gitlab.com
	Token   string
	Project string
}

type gitLabTracker struct {
	client  *gitlab.Client
	project string
}

// NewGitLab builds an IssueTracker backed by a GitLab project.
func NewGitLab(cfg GitLabConfig) (IssueTracker, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("gitlab tracker: token is required")
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("gitlab tracker: project is required")
	}

	client, err := newClient(cfg.BaseURL, cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}

	return &gitLabTracker{client: client, project: cfg.Project}, nil
}

func newClient(baseURL, token string) (*gitlab.Client, error) {
	if baseURL == "" {
		return gitlab.NewClient(token)
	}
	apiURL := strings.TrimSuffix(baseURL, "/") + "/api/v4"
	return gitlab.NewClient(token, gitlab.WithBaseURL(apiURL))
}

func (t *gitLabTracker) CreateIssue(ctx context.Context, issue model.GeneratedIssue) (*model.CreatedIssue, error) {
	labels := gitlab.LabelOptions(issue.Labels)

	created, _, err := t.client.Issues.CreateIssue(t.project, &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(issue.Title),
		Description: gitlab.Ptr(issue.Body),
		Labels:      &labels,
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("creating issue on gitlab: %w", err)
	}

	result := &model.CreatedIssue{
		Issue:      issue,
		ExternalID: int64(created.IID),
		WebURL:     created.WebURL,
		CreatedAt:  time.Now(),
	}
	if created.CreatedAt != nil {
		result.CreatedAt = *created.CreatedAt
	}
	return result, nil
}

// EnsureLabels creates missing labels and updates existing ones in place so
// colors and descriptions stay aligned with the standard set. Idempotent.
func (t *gitLabTracker) EnsureLabels(ctx context.Context, labels []Label) (int, int, error) {
	existing, err := t.listLabelNames(ctx)
	if err != nil {
		return 0, 0, err
	}

	var created, updated int
	for _, l := range labels {
		color := "#" + l.Color
		if existing[l.Name] {
			_, _, err := t.client.Labels.UpdateLabel(t.project, nil, &gitlab.UpdateLabelOptions{
				Name:        gitlab.Ptr(l.Name),
				Color:       gitlab.Ptr(color),
				Description: gitlab.Ptr(l.Description),
			}, gitlab.WithContext(ctx))
			if err != nil {
				return created, updated, fmt.Errorf("updating label %q: %w", l.Name, err)
			}
			updated++
			continue
		}
		_, _, err := t.client.Labels.CreateLabel(t.project, &gitlab.CreateLabelOptions{
			Name:        gitlab.Ptr(l.Name),
			Color:       gitlab.Ptr(color),
			Description: gitlab.Ptr(l.Description),
		}, gitlab.WithContext(ctx))
		if err != nil {
			return created, updated, fmt.Errorf("creating label %q: %w", l.Name, err)
		}
		created++
	}
	return created, updated, nil
}

// EnsureMilestones creates any milestone whose title is not present yet.
func (t *gitLabTracker) EnsureMilestones(ctx context.Context, milestones []Milestone) (int, error) {
	existing := map[string]bool{}
	opts := &gitlab.ListMilestonesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	for {
		page, resp, err := t.client.Milestones.ListMilestones(t.project, opts, gitlab.WithContext(ctx))
		if err != nil {
			return 0, fmt.Errorf("listing milestones: %w", err)
		}
		for _, m := range page {
			existing[m.Title] = true
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	var created int
	for _, m := range milestones {
		if existing[m.Title] {
			continue
		}
		_, _, err := t.client.Milestones.CreateMilestone(t.project, &gitlab.CreateMilestoneOptions{
			Title:       gitlab.Ptr(m.Title),
			Description: gitlab.Ptr(m.Description),
		}, gitlab.WithContext(ctx))
		if err != nil {
			return created, fmt.Errorf("creating milestone %q: %w", m.Title, err)
		}
		created++
	}
	return created, nil
}

func (t *gitLabTracker) listLabelNames(ctx context.Context) (map[string]bool, error) {
	names := map[string]bool{}
	opts := &gitlab.ListLabelsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	for {
		page, resp, err := t.client.Labels.ListLabels(t.project, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing labels: %w", err)
		}
		for _, l := range page {
			names[l.Name] = true
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}
