// Package userstory parses user-story backlogs out of markdown. The
// expected shape per story is:
//
//	- **US-CAT-###**: As a player, I want X so that Y
//	  - Labels: `label1`, `label2`
//	  - Acceptance Criteria:
//	    - Criterion 1
//	    - Criterion 2
//
// Parsed stories convert into plain issue records and flow through the same
// push path as catalog-generated issues.
package userstory

import (
	"regexp"
	"strings"

	"gameplan.app/gameplan/internal/model"
)

var storyLine = regexp.MustCompile(`^- \*\*([A-Z]+-[A-Z]+-\d+)\*\*: (.+)$`)

const (
	labelsPrefix   = "- Labels:"
	criteriaPrefix = "- Acceptance Criteria:"
)

// Story is one parsed user story.
type Story struct {
	ID                 string
	Title              string
	Labels             []string
	AcceptanceCriteria []string
}

// Issue materializes the story as an issue record. The body repeats the
// story text and lists acceptance criteria as an unchecked checklist.
func (s Story) Issue() model.GeneratedIssue {
	var body strings.Builder
	body.WriteString(s.Title)
	if len(s.AcceptanceCriteria) > 0 {
		body.WriteString("\n\n**Acceptance Criteria:**")
		for _, c := range s.AcceptanceCriteria {
			body.WriteString("\n- [ ] " + c)
		}
	}
	return model.GeneratedIssue{
		Title:  s.ID + ": " + s.Title,
		Body:   body.String(),
		Labels: append([]string(nil), s.Labels...),
	}
}

// Parse scans text for story blocks in document order. Lines that do not
// belong to a story are ignored; a malformed block simply yields fewer
// fields, never an error.
func Parse(text string) []Story {
	lines := strings.Split(text, "\n")
	var stories []Story

	i := 0
	for i < len(lines) {
		m := storyLine.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			i++
			continue
		}

		story := Story{ID: m[1], Title: m[2]}

		j := i + 1
	block:
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			switch {
			case strings.HasPrefix(next, labelsPrefix):
				story.Labels = parseLabels(strings.TrimPrefix(next, labelsPrefix))
				j++
			case strings.HasPrefix(next, criteriaPrefix):
				j++
				for j < len(lines) {
					line := strings.TrimSpace(lines[j])
					if !strings.HasPrefix(line, "- ") || storyLine.MatchString(line) {
						break
					}
					criterion := strings.TrimSpace(strings.TrimPrefix(line, "- "))
					if criterion != "" && !strings.HasPrefix(criterion, "Labels:") {
						story.AcceptanceCriteria = append(story.AcceptanceCriteria, criterion)
					}
					j++
				}
				break block
			case next == "" || storyLine.MatchString(next):
				break block
			default:
				j++
			}
		}

		stories = append(stories, story)
		i = j
	}

	return stories
}

func parseLabels(raw string) []string {
	raw = strings.ReplaceAll(raw, "`", "")
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
