// Package designdoc parses game design documents into a typed feature model.
//
// Documents are loosely structured markdown. Section scraping is implemented
// as an explicit state machine over lines rather than regex lookahead: a
// section opens at its level-3 heading and closes at the next heading of
// level three or shallower. Deeper headings (four or more hashes) belong to
// the section and do not close it.
package designdoc

import (
	"strings"

	"gameplan.app/gameplan/internal/model"
)

const (
	checkedMarker   = "- [x] "
	uncheckedMarker = "- [ ] "
)

// Section heading prefixes. Matching is case-sensitive; trailing text on the
// heading line (e.g. "### Must-Have Features (MVP)") is allowed.
const (
	mustHaveHeading    = "Must-Have Features"
	niceToHaveHeading  = "Nice-to-Have Features"
	progressionHeading = "Player Progression"
)

// Whole-document checkbox probes for the boolean flags. These are substring
// checks over the raw text, deliberately not scoped to any section.
var (
	multiplayerProbes = []string{
		"[x] Local multiplayer",
		"[x] Online multiplayer",
	}
	aiProbes = []string{
		"[x] Enemy AI needed",
		"[x] NPC AI needed",
		"[x] Pathfinding required",
	}
	audioProbes = []string{
		"[x] Background music",
		"[x] Sound effects",
		"[x] Voice acting",
	}
)

// Extract parses raw document text into a FeatureModel. It is pure and
// deterministic: the same text always yields a structurally equal model.
// A document missing a section yields empty lists, never an error.
func Extract(text string) model.FeatureModel {
	return model.FeatureModel{
		MustHave:    checkedItems(sectionLines(text, mustHaveHeading)),
		NiceToHave:  checkedItems(sectionLines(text, niceToHaveHeading)),
		Progression: checkedItems(sectionLines(text, progressionHeading)),
		Multiplayer: containsAny(text, multiplayerProbes),
		AI:          containsAny(text, aiProbes),
		Audio:       containsAny(text, audioProbes),
		// Graphics intentionally stays nil; see model.FeatureModel.
	}
}

// sectionLines returns the lines between the first level-3 heading whose
// text starts with heading and the next heading of level <= 3 (or EOF).
// Returns nil when the heading is absent.
func sectionLines(text, heading string) []string {
	lines := strings.Split(text, "\n")

	var body []string
	inSection := false
	for _, line := range lines {
		level, title := headingLine(line)
		if !inSection {
			if level == 3 && strings.HasPrefix(title, heading) {
				inSection = true
			}
			continue
		}
		if level > 0 && level <= 3 {
			break
		}
		body = append(body, line)
	}
	if !inSection {
		return nil
	}
	return body
}

// headingLine reports the heading level (count of leading hashes) and the
// heading text of a markdown line, or level 0 for non-heading lines.
func headingLine(line string) (int, string) {
	if !strings.HasPrefix(line, "#") {
		return 0, ""
	}
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level, strings.TrimSpace(line[level:])
}

// checkedItems collects the text of every checked-checkbox line, in order.
// Unchecked markers are skipped; item text gets a final trim.
func checkedItems(lines []string) []string {
	items := []string{}
	for _, line := range lines {
		idx := strings.Index(line, checkedMarker)
		if idx < 0 {
			continue
		}
		item := strings.TrimSpace(line[idx+len(checkedMarker):])
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func containsAny(text string, probes []string) bool {
	for _, probe := range probes {
		if strings.Contains(text, probe) {
			return true
		}
	}
	return false
}
