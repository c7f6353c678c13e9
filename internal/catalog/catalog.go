// Package catalog loads and validates the issue template catalog. The
// catalog is an explicit immutable value threaded through selection and
// reporting; nothing in the pipeline holds it as hidden global state.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"gameplan.app/gameplan/internal/model"
)

// ErrMissingCategory is returned when the catalog lacks a category key the
// selector's rule table expects. This is a fatal configuration error, never
// silently skipped.
var ErrMissingCategory = errors.New("catalog missing expected category")

//go:embed templates.json
var defaultCatalogJSON []byte

// Catalog maps category keys to their definitions. Loaded once before any
// selection call and treated as read-only afterwards. File order of the
// categories is preserved: title-based classification resolves duplicate
// titles to the first matching category in that order.
type Catalog struct {
	Categories map[string]model.Category `json:"categories" yaml:"categories"`

	order []string
}

// Default returns the embedded catalog shipped with the binary.
func Default() (Catalog, error) {
	return parse(defaultCatalogJSON)
}

// LoadFile loads a catalog from a JSON or YAML file. JSON parses through the
// YAML decoder (JSON is a YAML subset), which also keeps category order.
// Load failures are fatal to the run; there is no fallback from a broken
// explicit catalog to the embedded one.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog file: %w", err)
	}
	return parse(data)
}

// Load returns the catalog at path, or the embedded default when path is
// empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func parse(data []byte) (Catalog, error) {
	var doc struct {
		Categories yaml.Node `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog: %w", err)
	}
	if doc.Categories.Kind != yaml.MappingNode {
		return Catalog{}, errors.New("parsing catalog: no categories defined")
	}

	c := Catalog{Categories: make(map[string]model.Category)}
	content := doc.Categories.Content
	for i := 0; i+1 < len(content); i += 2 {
		key := content[i].Value
		var cat model.Category
		if err := content[i+1].Decode(&cat); err != nil {
			return Catalog{}, fmt.Errorf("parsing catalog category %q: %w", key, err)
		}
		cat.Key = key
		if _, seen := c.Categories[key]; !seen {
			c.order = append(c.order, key)
		}
		c.Categories[key] = cat
	}
	if len(c.Categories) == 0 {
		return Catalog{}, errors.New("parsing catalog: no categories defined")
	}
	return c, nil
}

// Category returns the definition for key. Missing keys surface
// ErrMissingCategory wrapped with the key.
func (c Catalog) Category(key string) (model.Category, error) {
	cat, ok := c.Categories[key]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: %q", ErrMissingCategory, key)
	}
	return cat, nil
}

// Ordered returns the categories in catalog file order.
func (c Catalog) Ordered() []model.Category {
	cats := make([]model.Category, 0, len(c.order))
	for _, key := range c.order {
		cats = append(cats, c.Categories[key])
	}
	return cats
}

// ClassifyTitle resolves an issue title to its originating category by title
// membership, first matching category in file order wins. The boolean is
// false when no category's templates carry the title.
func (c Catalog) ClassifyTitle(title string) (model.Category, bool) {
	for _, cat := range c.Ordered() {
		for _, tmpl := range cat.Templates {
			if tmpl.Title == title {
				return cat, true
			}
		}
	}
	return model.Category{}, false
}

// Validate checks that every expected key is present. It reports all missing
// keys at once so a broken catalog file can be fixed in one pass.
func (c Catalog) Validate(expected []string) error {
	var missing []string
	for _, key := range expected {
		if _, ok := c.Categories[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingCategory, strings.Join(missing, ", "))
	}
	return nil
}
