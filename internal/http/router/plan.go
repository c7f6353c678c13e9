package router

import (
	"github.com/gin-gonic/gin"

	"gameplan.app/gameplan/internal/http/handler"
)

func PlanRouter(group *gin.RouterGroup, h *handler.PlanHandler) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/push", h.Push)
	group.GET("/:id/issues", h.ListCreatedIssues)
}
