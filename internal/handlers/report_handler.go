package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesflow/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) PipelineSummary(c *gin.Context) {
	summary, err := h.Service.PipelineSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
