package report_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/model"
	"gameplan.app/gameplan/internal/planner"
	"gameplan.app/gameplan/internal/report"
)

var _ = Describe("Build", func() {
	var cat catalog.Catalog

	BeforeEach(func() {
		var err error
		cat, err = catalog.Default()
		Expect(err).NotTo(HaveOccurred())
	})

	It("counts total issues", func() {
		issues, err := planner.Select(model.FeatureModel{AI: true}, cat)
		Expect(err).NotTo(HaveOccurred())

		r := report.Build(issues, cat)
		Expect(r.TotalIssues).To(Equal(len(issues)))
	})

	It("sums category counts to the total when every title matches", func() {
		issues, err := planner.Select(model.FeatureModel{Audio: true, Multiplayer: true}, cat)
		Expect(err).NotTo(HaveOccurred())

		r := report.Build(issues, cat)
		sum := 0
		for _, n := range r.ByCategory {
			sum += n
		}
		Expect(sum).To(Equal(r.TotalIssues))
	})

	It("keys category counts on display names", func() {
		issues, err := planner.Select(model.FeatureModel{}, cat)
		Expect(err).NotTo(HaveOccurred())

		r := report.Build(issues, cat)
		Expect(r.ByCategory).To(HaveKeyWithValue("Core Mechanics", 3))
		Expect(r.ByCategory).To(HaveKeyWithValue("UI & UX", 2))
	})

	It("omits categories with no matching issue instead of reporting zero", func() {
		issues, err := planner.Select(model.FeatureModel{}, cat)
		Expect(err).NotTo(HaveOccurred())

		r := report.Build(issues, cat)
		Expect(r.ByCategory).NotTo(HaveKey("AI Systems"))
		Expect(r.ByCategory).NotTo(HaveKey("Multiplayer"))
	})

	It("counts label occurrences, summing to total labels not total issues", func() {
		issues := []model.GeneratedIssue{
			{Title: "Implement player controller", Labels: []string{"programming", "core-mechanics"}},
			{Title: "Build HUD", Labels: []string{"ui", "programming"}},
		}

		r := report.Build(issues, cat)
		Expect(r.ByLabel).To(HaveKeyWithValue("programming", 2))
		Expect(r.ByLabel).To(HaveKeyWithValue("ui", 1))

		sum := 0
		for _, n := range r.ByLabel {
			sum += n
		}
		Expect(sum).To(Equal(4))
	})

	It("leaves unmatched titles out of category counts but in the total", func() {
		issues := []model.GeneratedIssue{
			{Title: "Hand-written one-off task", Labels: []string{"enhancement"}},
		}

		r := report.Build(issues, cat)
		Expect(r.TotalIssues).To(Equal(1))
		Expect(r.ByCategory).To(BeEmpty())
		Expect(r.ByLabel).To(HaveKeyWithValue("enhancement", 1))
	})

	It("attributes duplicate titles to the first matching category", func() {
		path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
		Expect(os.WriteFile(path, []byte(`categories:
  first:
    name: First
    templates:
      - title: Shared title
        body: a
        labels: [x]
  second:
    name: Second
    templates:
      - title: Shared title
        body: b
        labels: [y]
`), 0o644)).To(Succeed())
		dup, err := catalog.LoadFile(path)
		Expect(err).NotTo(HaveOccurred())

		issues := []model.GeneratedIssue{
			{Title: "Shared title", Labels: []string{"x"}},
			{Title: "Shared title", Labels: []string{"y"}},
		}

		r := report.Build(issues, dup)
		Expect(r.ByCategory).To(HaveKeyWithValue("First", 2))
		Expect(r.ByCategory).NotTo(HaveKey("Second"))
	})

	It("returns empty maps for an empty issue list", func() {
		r := report.Build(nil, cat)
		Expect(r.TotalIssues).To(BeZero())
		Expect(r.ByCategory).To(BeEmpty())
		Expect(r.ByLabel).To(BeEmpty())
	})
})
