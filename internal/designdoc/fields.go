package designdoc

import (
	"strings"

	"gameplan.app/gameplan/internal/model"
)

// Field labels used by the document template for technical requirements.
const (
	FieldEngine   = "Engine/Framework"
	FieldLanguage = "Programming Language"
	FieldPlatform = "Target Platform"
	FieldGenre    = "Genre"
)

// ExtractField finds a heading of the exact form "### <name>" (heading text
// matched case-insensitively) and returns the next non-empty line, cut at
// the first '#', with placeholder brackets stripped and whitespace trimmed.
// Returns nil when the heading or its value line is absent.
func ExtractField(text, name string) *string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		level, title := headingLine(line)
		if level != 3 || !strings.EqualFold(title, name) {
			continue
		}

		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "" {
				continue
			}
			// A heading (or any line opening with '#') is not a value.
			if strings.HasPrefix(trimmed, "#") {
				return nil
			}
			if cut := strings.IndexByte(trimmed, '#'); cut >= 0 {
				trimmed = trimmed[:cut]
			}
			value := strings.TrimSpace(stripBrackets(trimmed))
			return &value
		}
		return nil
	}
	return nil
}

// ExtractRequirements applies ExtractField for each technical requirement
// label. Absent fields stay nil; that is an extraction gap, not an error.
func ExtractRequirements(text string) model.Requirements {
	return model.Requirements{
		Engine:   ExtractField(text, FieldEngine),
		Language: ExtractField(text, FieldLanguage),
		Platform: ExtractField(text, FieldPlatform),
		Genre:    ExtractField(text, FieldGenre),
	}
}

// stripBrackets removes the literal '[' and ']' characters the document
// template uses to mark placeholder values.
func stripBrackets(s string) string {
	s = strings.ReplaceAll(s, "[", "")
	return strings.ReplaceAll(s, "]", "")
}
