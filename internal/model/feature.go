package model

// FeatureModel is the structured result of parsing a single design document.
// It is built once per document and never mutated afterwards.
type FeatureModel struct {
	MustHave    []string `json:"must_have"`
	NiceToHave  []string `json:"nice_to_have"`
	Multiplayer bool     `json:"multiplayer"`
	AI          bool     `json:"ai"`
	Audio       bool     `json:"audio"`
	Progression []string `json:"progression"`

	// Graphics is reserved. No extraction rule populates it today; existing
	// documents rely on it staying nil, so downstream code must treat it as
	// an intentional pass-through rather than a missing rule.
	Graphics *string `json:"graphics"`
}

// Requirements holds the labeled single-line technical fields of a design
// document. Any field may be nil when the document omits its heading.
type Requirements struct {
	Engine   *string `json:"engine"`
	Language *string `json:"language"`
	Platform *string `json:"platform"`
	Genre    *string `json:"genre"`
}
