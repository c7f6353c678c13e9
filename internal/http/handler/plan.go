package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameplan.app/gameplan/internal/http/dto"
	"gameplan.app/gameplan/internal/model"
	"gameplan.app/gameplan/internal/service"
	"gameplan.app/gameplan/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type PlanHandler struct {
	planService service.PlanService
	pusher      service.PushService
	plans       store.PlanStore
}

// NewPlanHandler creates the plan handler. The push service and plan store
// are optional: pusher is nil when no issue tracker is configured, plans is
// nil when the server runs without a database.
func NewPlanHandler(planService service.PlanService, pusher service.PushService, plans store.PlanStore) *PlanHandler {
	return &PlanHandler{planService: planService, pusher: pusher, plans: plans}
}

func (h *PlanHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.planService.Plan(ctx, req.Document, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyDocument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "document text is empty"})
			return
		}
		slog.ErrorContext(ctx, "generating plan failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate plan"})
		return
	}

	if h.plans != nil {
		if err := h.plans.Create(ctx, plan); err != nil {
			slog.ErrorContext(ctx, "persisting plan failed", "error", err, "plan_id", plan.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist plan"})
			return
		}
	}

	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

func (h *PlanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.plans == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "plan history is not enabled"})
		return
	}

	limit := int64(defaultListLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(parsed, maxListLimit)
	}

	plans, err := h.plans.List(ctx, int32(limit))
	if err != nil {
		slog.ErrorContext(ctx, "listing plans failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanListResponse(plans))
}

func (h *PlanHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	if h.plans == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "plan history is not enabled"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	plan, err := h.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		slog.ErrorContext(ctx, "loading plan failed", "error", err, "plan_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// Push sends a stored plan's issues to the configured tracker and records
// what was created in the run history.
func (h *PlanHandler) Push(c *gin.Context) {
	ctx := c.Request.Context()

	if h.plans == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "plan history is not enabled"})
		return
	}
	if h.pusher == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "issue tracker is not configured"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	plan, err := h.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		slog.ErrorContext(ctx, "loading plan failed", "error", err, "plan_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}

	created, failed, pushErr := h.pusher.Push(ctx, plan.Issues)

	// Record whatever landed in the tracker even when the batch was cut
	// short, so run history matches the tracker.
	if len(created) > 0 {
		if err := h.plans.RecordCreated(ctx, plan.ID, created); err != nil {
			slog.ErrorContext(ctx, "recording created issues failed", "error", err, "plan_id", plan.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record created issues"})
			return
		}
	}

	if pushErr != nil {
		slog.ErrorContext(ctx, "push interrupted", "error", pushErr, "plan_id", plan.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "push interrupted"})
		return
	}

	if failed == nil {
		failed = []model.CreationFailure{}
	}
	c.JSON(http.StatusOK, dto.PushResponse{PlanID: plan.ID, Created: created, Failed: failed})
}

// ListCreatedIssues returns the tracker issues recorded for a stored plan.
func (h *PlanHandler) ListCreatedIssues(c *gin.Context) {
	ctx := c.Request.Context()

	if h.plans == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "plan history is not enabled"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	if _, err := h.plans.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		slog.ErrorContext(ctx, "loading plan failed", "error", err, "plan_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}

	issues, err := h.plans.ListCreated(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "listing created issues failed", "error", err, "plan_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list created issues"})
		return
	}
	if issues == nil {
		issues = []model.CreatedIssue{}
	}

	c.JSON(http.StatusOK, dto.CreatedIssuesResponse{PlanID: id, Issues: issues})
}
