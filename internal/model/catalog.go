package model

// IssueTemplate is one reusable unit of work inside a category. Titles are
// unique within a category but not across categories; grouping issues back
// to a category by title is best-effort, first matching category wins.
type IssueTemplate struct {
	Title  string   `json:"title" yaml:"title"`
	Body   string   `json:"body" yaml:"body"`
	Labels []string `json:"labels" yaml:"labels"`
}

// Category is a named bucket of issue templates. Identity is the catalog key
// (e.g. "ai_systems"); Name is the human-readable display name.
type Category struct {
	Key       string          `json:"-" yaml:"-"`
	Name      string          `json:"name" yaml:"name"`
	Templates []IssueTemplate `json:"templates" yaml:"templates"`
}
