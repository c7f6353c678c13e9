package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gameplan.app/gameplan/common/id"
	"gameplan.app/gameplan/internal/catalog"
	"gameplan.app/gameplan/internal/service"
)

const platformerDoc = `# Pixel Runner

### Must-Have Features

- [x] Double jump
- [x] Wall slide

### Player Progression

- [x] Unlockable skins

### Audio

- [x] Sound effects

### Engine/Framework

Godot 4

### Genre

Platformer
`

var _ = Describe("PlanService", func() {
	var (
		svc service.PlanService
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		cat, err := catalog.Default()
		Expect(err).NotTo(HaveOccurred())
		svc = service.NewPlanService(cat)
		Expect(id.Init(1)).To(Succeed())
	})

	It("rejects an empty document", func() {
		_, err := svc.Plan(ctx, "empty.md", "   \n\t\n")
		Expect(err).To(MatchError(service.ErrEmptyDocument))
	})

	It("runs the full pipeline over a document", func() {
		plan, err := svc.Plan(ctx, "pixel_runner.md", platformerDoc)
		Expect(err).NotTo(HaveOccurred())

		Expect(plan.ID).NotTo(BeZero())
		Expect(plan.Document).To(Equal("pixel_runner.md"))
		Expect(plan.GeneratedAt).NotTo(BeZero())

		Expect(plan.Features.MustHave).To(Equal([]string{"Double jump", "Wall slide"}))
		Expect(plan.Features.Audio).To(BeTrue())
		Expect(plan.Features.AI).To(BeFalse())
		Expect(plan.Features.Multiplayer).To(BeFalse())

		Expect(plan.Requirements.Engine).NotTo(BeNil())
		Expect(*plan.Requirements.Engine).To(Equal("Godot 4"))
		Expect(*plan.Requirements.Genre).To(Equal("Platformer"))

		// 13 base + 2 audio + 2 progression
		Expect(plan.Issues).To(HaveLen(17))
		Expect(plan.Report.TotalIssues).To(Equal(17))
		Expect(plan.Report.ByCategory).To(HaveKeyWithValue("Audio", 2))
		Expect(plan.Report.ByCategory).To(HaveKeyWithValue("Player Progression", 2))
		Expect(plan.Report.ByCategory).NotTo(HaveKey("AI Systems"))
	})

	It("selects AI, audio, and progression work for the space colony document", func() {
		doc := `# Space Colony Manager

### Must-Have Features

- [x] Resource gathering
- [x] Colonist simulation

### Player Progression

- [x] Tech tree research

### Technical Checks

- [x] Pathfinding required
- [x] Background music
- [ ] Local multiplayer
`
		plan, err := svc.Plan(ctx, "space_colony.md", doc)
		Expect(err).NotTo(HaveOccurred())

		Expect(plan.Report.ByCategory).To(HaveKey("AI Systems"))
		Expect(plan.Report.ByCategory).To(HaveKey("Audio"))
		Expect(plan.Report.ByCategory).To(HaveKey("Player Progression"))
		Expect(plan.Report.ByCategory).NotTo(HaveKey("Multiplayer"))
	})

	It("gives consecutive plans distinct ids", func() {
		first, err := svc.Plan(ctx, "a.md", platformerDoc)
		Expect(err).NotTo(HaveOccurred())
		second, err := svc.Plan(ctx, "b.md", platformerDoc)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.ID).NotTo(Equal(second.ID))
	})

	It("surfaces a catalog missing rule categories", func() {
		svc := service.NewPlanService(catalog.Catalog{})
		_, err := svc.Plan(ctx, "doc.md", platformerDoc)
		Expect(err).To(MatchError(catalog.ErrMissingCategory))
	})
})
