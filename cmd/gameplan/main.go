// Command gameplan turns a markdown game design document into a tracker
// backlog. Subcommands cover the full pipeline: plan previews the generated
// issues, export writes them to disk, create pushes them to GitLab, setup
// prepares labels and milestones, stories handles user-story backlogs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"gameplan.app/gameplan/common/id"
	"gameplan.app/gameplan/common/logger"
	"gameplan.app/gameplan/core/config"
	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/export"
	"gameplan.app/gameplan/internal/model"
	"gameplan.app/gameplan/internal/service"
	"gameplan.app/gameplan/internal/service/issue_tracker"
	"gameplan.app/gameplan/internal/userstory"
)

const usage = `usage: gameplan <command> [flags]

commands:
  plan            generate a plan from a design document and print the report
  export          write the generated issues to JSON and Markdown files
  create          push the generated issues to the configured GitLab project
  setup           create or update standard labels and milestones on GitLab
  stories         parse a user-story backlog and optionally push it
  catalog-schema  print the JSON Schema for custom catalog files
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		err = runPlan(ctx, cfg, os.Args[2:])
	case "export":
		err = runExport(ctx, cfg, os.Args[2:])
	case "create":
		err = runCreate(ctx, cfg, os.Args[2:])
	case "setup":
		err = runSetup(ctx, cfg, os.Args[2:])
	case "stories":
		err = runStories(ctx, cfg, os.Args[2:])
	case "catalog-schema":
		err = runCatalogSchema(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.ErrorContext(ctx, "command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func generate(ctx context.Context, cfg config.Config, fs *flag.FlagSet, args []string) (*model.Plan, catalog.Catalog, error) {
	catalogPath := fs.String("catalog", cfg.CatalogPath, "path to a custom catalog file (JSON or YAML)")
	if err := fs.Parse(args); err != nil {
		return nil, catalog.Catalog{}, err
	}
	if fs.NArg() != 1 {
		return nil, catalog.Catalog{}, fmt.Errorf("expected exactly one design document path")
	}

	docPath := fs.Arg(0)
	text, err := os.ReadFile(docPath)
	if err != nil {
		return nil, catalog.Catalog{}, fmt.Errorf("reading design document: %w", err)
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}

	plan, err := service.NewPlanService(cat).Plan(ctx, docPath, string(text))
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	return plan, cat, nil
}

func runPlan(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	plan, _, err := generate(ctx, cfg, fs, args)
	if err != nil {
		return err
	}

	fmt.Printf("Plan %d for %s\n\n", plan.ID, plan.Document)
	printRequirements(plan.Requirements)
	fmt.Printf("Total issues: %d\n\n", plan.Report.TotalIssues)
	fmt.Println("By category:")
	for _, name := range sortedKeys(plan.Report.ByCategory) {
		fmt.Printf("  %-28s %d\n", name, plan.Report.ByCategory[name])
	}
	fmt.Println("\nBy label:")
	for _, name := range sortedKeys(plan.Report.ByLabel) {
		fmt.Printf("  %-28s %d\n", name, plan.Report.ByLabel[name])
	}
	return nil
}

func runExport(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	jsonPath := fs.String("json", "issues.json", "path for the JSON export")
	markdownPath := fs.String("markdown", "project_plan.md", "path for the Markdown export")
	plan, cat, err := generate(ctx, cfg, fs, args)
	if err != nil {
		return err
	}

	if err := export.WriteJSON(plan.Issues, *jsonPath); err != nil {
		return err
	}
	if err := export.WriteMarkdown(plan.Issues, cat, *markdownPath); err != nil {
		return err
	}
	slog.InfoContext(ctx, "plan exported",
		"plan_id", plan.ID, "json", *jsonPath, "markdown", *markdownPath)
	return nil
}

func runCreate(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	plan, _, err := generate(ctx, cfg, fs, args)
	if err != nil {
		return err
	}

	tracker, err := newTracker(cfg)
	if err != nil {
		return err
	}

	pusher := service.NewPushService(tracker,
		service.WithDelay(time.Duration(cfg.CreateDelayMs)*time.Millisecond))

	created, failed, err := pusher.Push(ctx, plan.Issues)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d of %d issues\n", len(created), len(plan.Issues))
	for _, f := range failed {
		fmt.Printf("  failed: %s (%s)\n", f.Issue.Title, f.Reason)
	}
	return nil
}

func runSetup(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	catalogPath := fs.String("catalog", cfg.CatalogPath, "path to a custom catalog file (JSON or YAML)")
	dryRun := fs.Bool("dry-run", false, "print what would be created without calling the tracker")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}

	labels := issue_tracker.StandardLabels()
	var names []string
	for _, category := range cat.Ordered() {
		names = append(names, category.Name)
	}
	milestones := issue_tracker.StandardMilestones(names)

	if *dryRun {
		fmt.Printf("Would ensure %d labels:\n", len(labels))
		for _, l := range labels {
			fmt.Printf("  %s (#%s)\n", l.Name, l.Color)
		}
		fmt.Printf("Would ensure %d milestones:\n", len(milestones))
		for _, m := range milestones {
			fmt.Printf("  %s\n", m.Title)
		}
		return nil
	}

	tracker, err := newTracker(cfg)
	if err != nil {
		return err
	}

	labelsCreated, labelsUpdated, err := tracker.EnsureLabels(ctx, labels)
	if err != nil {
		return err
	}
	milestonesCreated, err := tracker.EnsureMilestones(ctx, milestones)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "tracker setup complete",
		"labels_created", labelsCreated,
		"labels_updated", labelsUpdated,
		"milestones_created", milestonesCreated)
	return nil
}

func runStories(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("stories", flag.ContinueOnError)
	push := fs.Bool("create", false, "push parsed stories to the configured GitLab project")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one backlog document path")
	}

	text, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading backlog document: %w", err)
	}

	stories := userstory.Parse(string(text))
	issues := make([]model.GeneratedIssue, 0, len(stories))
	for _, story := range stories {
		issues = append(issues, story.Issue())
	}

	if !*push {
		out, err := export.JSON(issues)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	tracker, err := newTracker(cfg)
	if err != nil {
		return err
	}
	pusher := service.NewPushService(tracker,
		service.WithDelay(time.Duration(cfg.CreateDelayMs)*time.Millisecond))

	created, failed, err := pusher.Push(ctx, issues)
	if err != nil {
		return err
	}
	fmt.Printf("Created %d of %d stories\n", len(created), len(issues))
	for _, f := range failed {
		fmt.Printf("  failed: %s (%s)\n", f.Issue.Title, f.Reason)
	}
	return nil
}

func runCatalogSchema(args []string) error {
	fs := flag.NewFlagSet("catalog-schema", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := catalog.Schema()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newTracker(cfg config.Config) (issue_tracker.IssueTracker, error) {
	if !cfg.GitLab.Enabled() {
		return nil, fmt.Errorf("GITLAB_TOKEN and GITLAB_PROJECT must be set")
	}
	return issue_tracker.NewGitLab(issue_tracker.GitLabConfig{
		BaseURL: cfg.GitLab.BaseURL,
		Token:   cfg.GitLab.Token,
		Project: cfg.GitLab.Project,
	})
}

func printRequirements(req model.Requirements) {
	print := func(name string, value *string) {
		if value != nil {
			fmt.Printf("%-22s %s\n", name+":", *value)
		}
	}
	print("Engine/Framework", req.Engine)
	print("Programming Language", req.Language)
	print("Target Platform", req.Platform)
	print("Genre", req.Genre)
	fmt.Println()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
