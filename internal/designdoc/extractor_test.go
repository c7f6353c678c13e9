package designdoc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gameplan.app/gameplan/internal/designdoc"
)

const spaceColonyDoc = `# Space Colony Manager

## Game Overview

A base-building strategy game set on a hostile exoplanet.

## Features

### Must-Have Features (MVP)

- [x] Resource gathering and storage
- [x] Colonist needs simulation
- [ ] Weather disasters
- [x] Building placement grid

### Nice-to-Have Features

- [x] Trade routes between colonies
- [ ] Photo mode

### Player Progression

- [x] Tech tree research
- [x] Colony tier upgrades

## Technical Details

### AI Requirements

- [x] Pathfinding required
- [ ] Enemy AI needed

### Audio

- [x] Background music
- [ ] Voice acting

### Multiplayer

- [ ] Local multiplayer
- [ ] Online multiplayer

## Technical Requirements

### Engine/Framework

Godot 4  # latest stable

### Programming Language

[GDScript]

### Target Platform

PC (Windows/Linux)

### Genre

Strategy / Simulation
`

var _ = Describe("Extract", func() {
	It("collects checked items per section", func() {
		features := designdoc.Extract(spaceColonyDoc)

		Expect(features.MustHave).To(Equal([]string{
			"Resource gathering and storage",
			"Colonist needs simulation",
			"Building placement grid",
		}))
		Expect(features.NiceToHave).To(Equal([]string{"Trade routes between colonies"}))
		Expect(features.Progression).To(Equal([]string{"Tech tree research", "Colony tier upgrades"}))
	})

	It("excludes unchecked items", func() {
		features := designdoc.Extract(spaceColonyDoc)
		Expect(features.MustHave).NotTo(ContainElement("Weather disasters"))
		Expect(features.NiceToHave).NotTo(ContainElement("Photo mode"))
	})

	It("sets boolean flags from checkbox probes anywhere in the document", func() {
		features := designdoc.Extract(spaceColonyDoc)
		Expect(features.AI).To(BeTrue())
		Expect(features.Audio).To(BeTrue())
		Expect(features.Multiplayer).To(BeFalse())
	})

	It("never populates graphics", func() {
		features := designdoc.Extract(spaceColonyDoc)
		Expect(features.Graphics).To(BeNil())
	})

	It("yields empty lists for a document without the sections", func() {
		features := designdoc.Extract("# Just a title\n\nSome prose.\n")
		Expect(features.MustHave).To(BeEmpty())
		Expect(features.NiceToHave).To(BeEmpty())
		Expect(features.Progression).To(BeEmpty())
		Expect(features.AI).To(BeFalse())
	})

	It("is deterministic", func() {
		Expect(designdoc.Extract(spaceColonyDoc)).To(Equal(designdoc.Extract(spaceColonyDoc)))
	})

	It("matches the section heading with trailing text", func() {
		doc := "### Must-Have Features (MVP)\n\n- [x] Double jump\n"
		Expect(designdoc.Extract(doc).MustHave).To(Equal([]string{"Double jump"}))
	})

	It("matches headings by prefix, not by substring", func() {
		doc := "### Player Progression Systems\n\n- [x] Skill tree\n"
		Expect(designdoc.Extract(doc).Progression).To(Equal([]string{"Skill tree"}))

		doc = "### Advanced Player Progression\n\n- [x] Skill tree\n"
		Expect(designdoc.Extract(doc).Progression).To(BeEmpty())
	})

	It("does not close a section on deeper headings", func() {
		doc := `### Must-Have Features

- [x] First

#### Details

- [x] Second

### Nice-to-Have Features

- [x] Third
`
		features := designdoc.Extract(doc)
		Expect(features.MustHave).To(Equal([]string{"First", "Second"}))
		Expect(features.NiceToHave).To(Equal([]string{"Third"}))
	})

	It("closes a section on the next level-2 heading", func() {
		doc := `### Must-Have Features

- [x] Inside

## Other Section

- [x] Outside
`
		Expect(designdoc.Extract(doc).MustHave).To(Equal([]string{"Inside"}))
	})

	It("tolerates indented checkbox lines", func() {
		doc := "### Player Progression\n\n  - [x] Skill tree\n"
		Expect(designdoc.Extract(doc).Progression).To(Equal([]string{"Skill tree"}))
	})
})

var _ = Describe("ExtractField", func() {
	It("returns the next non-empty line after the heading", func() {
		value := designdoc.ExtractField(spaceColonyDoc, designdoc.FieldPlatform)
		Expect(value).NotTo(BeNil())
		Expect(*value).To(Equal("PC (Windows/Linux)"))
	})

	It("cuts the value at an inline hash", func() {
		value := designdoc.ExtractField(spaceColonyDoc, designdoc.FieldEngine)
		Expect(value).NotTo(BeNil())
		Expect(*value).To(Equal("Godot 4"))
	})

	It("strips placeholder brackets", func() {
		value := designdoc.ExtractField(spaceColonyDoc, designdoc.FieldLanguage)
		Expect(value).NotTo(BeNil())
		Expect(*value).To(Equal("GDScript"))
	})

	It("matches the heading case-insensitively", func() {
		doc := "### GENRE\n\nRoguelike\n"
		value := designdoc.ExtractField(doc, designdoc.FieldGenre)
		Expect(value).NotTo(BeNil())
		Expect(*value).To(Equal("Roguelike"))
	})

	It("returns nil when the heading is absent", func() {
		Expect(designdoc.ExtractField("# Title\n", designdoc.FieldGenre)).To(BeNil())
	})

	It("returns nil when another heading follows immediately", func() {
		doc := "### Genre\n\n### Target Platform\n\nPC\n"
		Expect(designdoc.ExtractField(doc, designdoc.FieldGenre)).To(BeNil())
	})
})

var _ = Describe("ExtractRequirements", func() {
	It("extracts every field from a complete document", func() {
		req := designdoc.ExtractRequirements(spaceColonyDoc)
		Expect(req.Engine).NotTo(BeNil())
		Expect(req.Language).NotTo(BeNil())
		Expect(req.Platform).NotTo(BeNil())
		Expect(req.Genre).NotTo(BeNil())
		Expect(*req.Genre).To(Equal("Strategy / Simulation"))
	})

	It("leaves absent fields nil", func() {
		req := designdoc.ExtractRequirements("### Genre\n\nPuzzle\n")
		Expect(req.Engine).To(BeNil())
		Expect(req.Language).To(BeNil())
		Expect(req.Platform).To(BeNil())
		Expect(*req.Genre).To(Equal("Puzzle"))
	})
})
