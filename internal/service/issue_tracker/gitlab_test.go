package issue_tracker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gameplan.app/gameplan/internal/model"
	issue_tracker "gameplan.app/gameplan/internal/service/issue_tracker"
)

type gitlabAPIMock struct {
	server *httptest.Server

	labels        []map[string]any
	milestones    []map[string]any
	createdIssues []map[string]any
	labelCreates  int
	labelUpdates  int

	issueStatus int
}

func newGitLabAPIMock() *gitlabAPIMock {
	m := &gitlabAPIMock{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v4/projects/42/issues", func(w http.ResponseWriter, r *http.Request) {
		if m.issueStatus != 0 {
			w.WriteHeader(m.issueStatus)
			return
		}
		var req map[string]any
		Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
		m.createdIssues = append(m.createdIssues, req)

		w.Header().Set("Content-Type", "application/json")
		createdAt := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		Expect(json.NewEncoder(w).Encode(map[string]any{
			"id":         len(m.createdIssues),
			"iid":        len(m.createdIssues),
			"title":      req["title"],
			"web_url":    "https://gitlab.example.com/g/p/-/issues/1",
			"created_at": createdAt,
		})).To(Succeed())
	})

	mux.HandleFunc("/api/v4/projects/42/labels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			Expect(json.NewEncoder(w).Encode(m.labels)).To(Succeed())
		case http.MethodPost:
			m.labelCreates++
			Expect(json.NewEncoder(w).Encode(map[string]any{"id": m.labelCreates})).To(Succeed())
		case http.MethodPut:
			m.labelUpdates++
			Expect(json.NewEncoder(w).Encode(map[string]any{"id": m.labelUpdates})).To(Succeed())
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v4/projects/42/milestones", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			Expect(json.NewEncoder(w).Encode(m.milestones)).To(Succeed())
		case http.MethodPost:
			var req map[string]any
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			m.milestones = append(m.milestones, req)
			Expect(json.NewEncoder(w).Encode(map[string]any{"id": len(m.milestones)})).To(Succeed())
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	m.server = httptest.NewServer(mux)
	return m
}

func (m *gitlabAPIMock) tracker() issue_tracker.IssueTracker {
	tracker, err := issue_tracker.NewGitLab(issue_tracker.GitLabConfig{
		BaseURL: m.server.URL,
		Token:   "test-token",
		Project: "42",
	})
	Expect(err).NotTo(HaveOccurred())
	return tracker
}

var _ = Describe("NewGitLab", func() {
	It("requires a token", func() {
		_, err := issue_tracker.NewGitLab(issue_tracker.GitLabConfig{Project: "42"})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("token"))
	})

	It("requires a project", func() {
		_, err := issue_tracker.NewGitLab(issue_tracker.GitLabConfig{Token: "t"})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("project"))
	})
})

var _ = Describe("gitLabTracker", func() {
	var (
		ctx  context.Context
		mock *gitlabAPIMock
	)

	BeforeEach(func() {
		ctx = context.Background()
		mock = newGitLabAPIMock()
		DeferCleanup(mock.server.Close)
	})

	Describe("CreateIssue", func() {
		It("creates the issue with title, body, and labels", func() {
			created, err := mock.tracker().CreateIssue(ctx, model.GeneratedIssue{
				Title:  "Implement player controller",
				Body:   "Build the thing.",
				Labels: []string{"programming", "core-mechanics"},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(created.ExternalID).To(Equal(int64(1)))
			Expect(created.WebURL).To(Equal("https://gitlab.example.com/g/p/-/issues/1"))
			Expect(created.CreatedAt.Year()).To(Equal(2026))

			Expect(mock.createdIssues).To(HaveLen(1))
			sent := mock.createdIssues[0]
			Expect(sent["title"]).To(Equal("Implement player controller"))
			Expect(sent["description"]).To(Equal("Build the thing."))
			labels, _ := sent["labels"].(string)
			Expect(strings.Split(labels, ",")).To(ConsistOf("programming", "core-mechanics"))
		})

		It("surfaces API failures", func() {
			mock.issueStatus = http.StatusForbidden
			_, err := mock.tracker().CreateIssue(ctx, model.GeneratedIssue{Title: "t"})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("creating issue on gitlab"))
		})
	})

	Describe("EnsureLabels", func() {
		It("creates missing labels and updates existing ones", func() {
			mock.labels = []map[string]any{
				{"id": 1, "name": "bug"},
			}

			created, updated, err := mock.tracker().EnsureLabels(ctx, []issue_tracker.Label{
				{Name: "bug", Color: "d73a4a", Description: "Something isn't working"},
				{Name: "audio", Color: "d4c5f9", Description: "Sound effects and music"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(Equal(1))
			Expect(updated).To(Equal(1))
			Expect(mock.labelCreates).To(Equal(1))
			Expect(mock.labelUpdates).To(Equal(1))
		})

		It("creates the full standard set on an empty project", func() {
			created, updated, err := mock.tracker().EnsureLabels(ctx, issue_tracker.StandardLabels())
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(Equal(len(issue_tracker.StandardLabels())))
			Expect(updated).To(BeZero())
		})
	})

	Describe("EnsureMilestones", func() {
		It("creates only milestones whose title is absent", func() {
			mock.milestones = []map[string]any{
				{"id": 1, "title": "Core Mechanics"},
			}

			created, err := mock.tracker().EnsureMilestones(ctx, issue_tracker.StandardMilestones([]string{
				"Core Mechanics",
				"Audio",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(Equal(1))
			Expect(mock.milestones).To(HaveLen(2))
			Expect(mock.milestones[1]["title"]).To(Equal("Audio"))
		})

		It("is a no-op when everything exists", func() {
			mock.milestones = []map[string]any{
				{"id": 1, "title": "Polish"},
			}
			created, err := mock.tracker().EnsureMilestones(ctx, issue_tracker.StandardMilestones([]string{"Polish"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeZero())
		})
	})
})
