package router

import (
	"github.com/gin-gonic/gin"

	"gameplan.app/gameplan/internal/http/handler"
	"gameplan.app/gameplan/internal/service"
	"gameplan.app/gameplan/internal/store"
)

func SetupRoutes(router *gin.Engine, planService service.PlanService, pusher service.PushService, plans store.PlanStore) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		planHandler := handler.NewPlanHandler(planService, pusher, plans)
		PlanRouter(v1.Group("/plans"), planHandler)
	}
}
