// Package export serializes a generated issue list for humans and machines.
// Both views are pure; writing them to disk is the only side effect and is
// kept in the Write helpers.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/model"
)

// otherSection collects issues whose title matches no catalog category.
// Cross-category titles land in their first matching category instead.
const otherSection = "Other"

// Section is one category grouping of the human-readable export.
type Section struct {
	Category string
	Issues   []model.GeneratedIssue
}

// Group buckets issues under their category display names, first matching
// category wins. Sections appear in order of their first issue, mirroring
// the order of the flat list.
func Group(issues []model.GeneratedIssue, cat catalog.Catalog) []Section {
	var sections []Section
	index := map[string]int{}

	for _, issue := range issues {
		name := otherSection
		if category, ok := cat.ClassifyTitle(issue.Title); ok {
			name = category.Name
		}
		i, ok := index[name]
		if !ok {
			i = len(sections)
			index[name] = i
			sections = append(sections, Section{Category: name})
		}
		sections[i].Issues = append(sections[i].Issues, issue)
	}
	return sections
}

// JSON renders the flat issue list verbatim as indented JSON.
func JSON(issues []model.GeneratedIssue) ([]byte, error) {
	out, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding issues: %w", err)
	}
	return out, nil
}

// Markdown renders the grouped view as a project plan document with a
// generation timestamp and total count banner.
func Markdown(issues []model.GeneratedIssue, cat catalog.Catalog, generatedAt time.Time) []byte {
	var sb strings.Builder

	sb.WriteString("# Game Development Project Plan\n\n")
	fmt.Fprintf(&sb, "Generated on: %s\n\n", generatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "Total Issues: %d\n\n", len(issues))
	sb.WriteString("---\n\n")

	for _, section := range Group(issues, cat) {
		fmt.Fprintf(&sb, "## %s\n\n", section.Category)
		for _, issue := range section.Issues {
			fmt.Fprintf(&sb, "### %s\n\n", issue.Title)
			fmt.Fprintf(&sb, "%s\n\n", issue.Body)
			if len(issue.Labels) > 0 {
				fmt.Fprintf(&sb, "**Labels:** %s\n\n", strings.Join(issue.Labels, ", "))
			}
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String())
}

// WriteJSON exports the flat list to path.
func WriteJSON(issues []model.GeneratedIssue, path string) error {
	out, err := JSON(issues)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing JSON export: %w", err)
	}
	return nil
}

// WriteMarkdown exports the grouped document to path.
func WriteMarkdown(issues []model.GeneratedIssue, cat catalog.Catalog, path string) error {
	out := Markdown(issues, cat, time.Now())
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing Markdown export: %w", err)
	}
	return nil
}
