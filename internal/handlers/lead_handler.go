package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salesflow/internal/models"
	"salesflow/internal/pdf"
	"salesflow/internal/services"
)

type LeadHandler struct {
	Service   *services.LeadService
	Pipelines *services.PipelineService
	PDF       pdf.Generator
}

func NewLeadHandler(service *services.LeadService, pipelines *services.PipelineService, pdfGen pdf.Generator) *LeadHandler {
	return &LeadHandler{Service: service, Pipelines: pipelines, PDF: pdfGen}
}

type CreateLeadRequest struct {
	ContactID  string  `json:"contact_id" binding:"required"`
	PipelineID string  `json:"pipeline_id" binding:"required"`
	StageID    string  `json:"stage_id" binding:"required"`
	Value      float64 `json:"value" example:"50000"`
}

// Create godoc
// @Summary Create a lead on a non-terminal stage of a pipeline
// @Tags leads
// @Accept json
// @Produce json
// @Param request body CreateLeadRequest true "lead"
// @Success 201 {object} models.Lead
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.Service.Create(c.Request.Context(), req.ContactID, req.PipelineID, req.StageID, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

type UpdateStageRequest struct {
	StageID string `json:"stage_id" binding:"required"`
}

// UpdateStage godoc
// @Summary Move a lead to another stage (forward only)
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "lead id"
// @Param request body UpdateStageRequest true "target stage"
// @Success 200 {object} models.Lead
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/stage [patch]
func (h *LeadHandler) UpdateStage(c *gin.Context) {
	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.Service.Transition(c.Request.Context(), c.Param("id"), req.StageID, getActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Convert переводит лид сразу в won-этап его воронки.
func (h *LeadHandler) Convert(c *gin.Context) {
	lead, err := h.Service.Convert(c.Request.Context(), c.Param("id"), getActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	lead, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// List отдаёт лиды либо по этапу (?pipeline_id=&stage_id=), либо по
// контакту (?contact_id=).
func (h *LeadHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)

	var (
		leads []*models.Lead
		err   error
	)
	switch {
	case c.Query("contact_id") != "":
		leads, err = h.Service.ListByContact(c.Request.Context(), c.Query("contact_id"), limit, offset)
	case c.Query("pipeline_id") != "" && c.Query("stage_id") != "":
		leads, err = h.Service.ListByStage(c.Request.Context(), c.Query("pipeline_id"), c.Query("stage_id"), limit, offset)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact_id or pipeline_id+stage_id required"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	c.JSON(http.StatusOK, leads)
}

// Timeline godoc
// @Summary Transition history of a lead, ordered by seq
// @Tags leads
// @Produce json
// @Param id path string true "lead id"
// @Param after_seq query int false "cursor: last seen seq"
// @Param limit query int false "page size"
// @Success 200 {array} models.TransitionRecord
// @Failure 404 {object} map[string]string
// @Router /leads/{id}/timeline [get]
func (h *LeadHandler) Timeline(c *gin.Context) {
	afterSeq, _ := strconv.ParseInt(c.DefaultQuery("after_seq", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.Service.History(c.Request.Context(), c.Param("id"), afterSeq, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if records == nil {
		records = []*models.TransitionRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *LeadHandler) TimelinePDF(c *gin.Context) {
	id := c.Param("id")
	lead, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pipeline, err := h.Pipelines.GetByID(c.Request.Context(), lead.PipelineID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	records, err := h.Service.History(c.Request.Context(), id, 0, 1000)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stageNames := make(map[string]string, len(pipeline.Stages))
	for _, st := range pipeline.Stages {
		stageNames[st.ID] = st.Name
	}

	data, err := h.PDF.GenerateTimeline(pdf.TimelineData{
		Lead:       lead,
		StageNames: stageNames,
		Records:    records,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=lead_%s_timeline.pdf", id))
	c.Data(http.StatusOK, "application/pdf", data)
}
