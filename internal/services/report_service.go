package services

import (
	"context"
	"fmt"

	"salesflow/internal/models"
)

type ReportService struct {
	Leads     LeadRepo
	Pipelines PipelineRepo
}

func NewReportService(leadRepo LeadRepo, pipelineRepo PipelineRepo) *ReportService {
	return &ReportService{Leads: leadRepo, Pipelines: pipelineRepo}
}

type StageSummary struct {
	StageID  string  `json:"stage_id"`
	Name     string  `json:"name"`
	Rank     int     `json:"rank"`
	Terminal string  `json:"terminal"`
	Leads    int     `json:"leads"`
	Value    float64 `json:"value"`
	Weighted float64 `json:"weighted"`
}

type PipelineSummary struct {
	PipelineID string         `json:"pipeline_id"`
	Stages     []StageSummary `json:"stages"`
	TotalLeads int            `json:"total_leads"`
	OpenValue  float64        `json:"open_value"`
	Forecast   float64        `json:"forecast"` // взвешенная по вероятности сумма открытых лидов
	WonValue   float64        `json:"won_value"`
}

func (s *ReportService) PipelineSummary(ctx context.Context, pipelineID string) (*PipelineSummary, error) {
	pipeline, err := s.Pipelines.GetByID(ctx, pipelineID)
	if err != nil {
		return nil, storageError(err)
	}
	if pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline %s", ErrNotFound, pipelineID)
	}

	totals, err := s.Leads.StageSummary(ctx, pipelineID)
	if err != nil {
		return nil, storageError(err)
	}
	byStage := make(map[string]models.StageTotals, len(totals))
	for _, t := range totals {
		byStage[t.StageID] = t
	}

	out := &PipelineSummary{PipelineID: pipelineID}
	for _, st := range pipeline.Stages {
		t := byStage[st.ID]
		out.Stages = append(out.Stages, StageSummary{
			StageID:  st.ID,
			Name:     st.Name,
			Rank:     st.Rank,
			Terminal: string(st.Terminal),
			Leads:    t.Leads,
			Value:    t.Value,
			Weighted: t.Weighted,
		})
		out.TotalLeads += t.Leads
		switch st.Terminal {
		case models.TerminalNone:
			out.OpenValue += t.Value
			out.Forecast += t.Weighted
		case models.TerminalWon:
			out.WonValue += t.Value
		}
	}
	return out, nil
}
