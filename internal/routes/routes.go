package routes

import (
	"github.com/gin-gonic/gin"

	"salesflow/internal/handlers"
	"salesflow/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	pipelineHandler *handlers.PipelineHandler,
	leadHandler *handlers.LeadHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	// PIPELINES
	pipelines := r.Group("/pipelines")
	{
		pipelines.POST("/", pipelineHandler.Create)
		pipelines.GET("/:id", pipelineHandler.GetByID)
	}

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/:id", leadHandler.GetByID)
		leads.GET("/", leadHandler.List)
		leads.PATCH("/:id/stage", leadHandler.UpdateStage)
		leads.POST("/:id/convert", leadHandler.Convert)
		leads.GET("/:id/timeline", leadHandler.Timeline)
		leads.GET("/:id/timeline.pdf", leadHandler.TimelinePDF)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/pipelines/:id/summary", reportHandler.PipelineSummary)
	}

	return r
}
