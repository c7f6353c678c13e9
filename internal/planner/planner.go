// Package planner turns a feature model into an ordered backlog by applying
// a fixed rule table over the template catalog.
package planner

import (
	"fmt"

	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/model"
)

// rule binds a catalog category key to its inclusion condition. Rules are
// evaluated in declaration order and that order is part of the contract:
// the output list is the concatenation of included categories' templates.
type rule struct {
	key     string
	include func(model.FeatureModel) bool
}

func always(model.FeatureModel) bool { return true }

var rules = []rule{
	{"core_mechanics", always},
	{"ai_systems", func(f model.FeatureModel) bool { return f.AI }},
	{"ui_ux", always},
	{"audio", func(f model.FeatureModel) bool { return f.Audio }},
	{"graphics_rendering", always},
	{"level_design", always},
	{"player_progression", func(f model.FeatureModel) bool { return len(f.Progression) > 0 }},
	{"multiplayer", func(f model.FeatureModel) bool { return f.Multiplayer }},
	{"testing_qa", always},
	{"polish", always},
}

// ExpectedCategories returns the category keys the rule table references,
// in rule order. The catalog must define every one of them.
func ExpectedCategories() []string {
	keys := make([]string, 0, len(rules))
	for _, r := range rules {
		keys = append(keys, r.key)
	}
	return keys
}

// Select produces the ordered issue list for a feature model. Templates of
// each included category are copied verbatim in catalog order; nothing is
// deduplicated, reordered, or dropped. A category key missing from the
// catalog is a configuration error and aborts selection.
func Select(features model.FeatureModel, cat catalog.Catalog) ([]model.GeneratedIssue, error) {
	issues := []model.GeneratedIssue{}
	for _, r := range rules {
		if !r.include(features) {
			continue
		}
		category, err := cat.Category(r.key)
		if err != nil {
			return nil, fmt.Errorf("selecting templates: %w", err)
		}
		for _, tmpl := range category.Templates {
			issues = append(issues, model.GeneratedIssue{
				Title:  tmpl.Title,
				Body:   tmpl.Body,
				Labels: append([]string(nil), tmpl.Labels...),
			})
		}
	}
	return issues, nil
}
