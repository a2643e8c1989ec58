package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesflow/internal/models"
	"salesflow/internal/services"
)

type PipelineHandler struct {
	Service *services.PipelineService
}

func NewPipelineHandler(service *services.PipelineService) *PipelineHandler {
	return &PipelineHandler{Service: service}
}

type StageRequest struct {
	Name     string `json:"name" binding:"required" example:"Qualified"`
	Rank     int    `json:"rank" binding:"required" example:"2"`
	Terminal string `json:"terminal" example:"none"` // none | won | lost
}

type DefinePipelineRequest struct {
	Stages []StageRequest `json:"stages" binding:"required,min=1"`
}

// Create godoc
// @Summary Define a new pipeline
// @Tags pipelines
// @Accept json
// @Produce json
// @Param request body DefinePipelineRequest true "ordered stages"
// @Success 201 {object} models.PipelineDefinition
// @Failure 400 {object} map[string]string
// @Router /pipelines [post]
func (h *PipelineHandler) Create(c *gin.Context) {
	var req DefinePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stages := make([]services.StageInput, 0, len(req.Stages))
	for _, st := range req.Stages {
		terminal := models.TerminalKind(st.Terminal)
		if st.Terminal == "" {
			terminal = models.TerminalNone
		}
		stages = append(stages, services.StageInput{
			Name:     st.Name,
			Rank:     st.Rank,
			Terminal: terminal,
		})
	}

	pipeline, err := h.Service.Define(c.Request.Context(), stages)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pipeline)
}

func (h *PipelineHandler) GetByID(c *gin.Context) {
	pipeline, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline)
}
