package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_PipelineSummary(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	reports := NewReportService(env.leads.Repo, env.pipelines.Repo)

	env.newLead(t, 1000)
	env.newLead(t, 3000)
	won := env.newLead(t, 10000)
	_, err := env.leads.Convert(ctx, won.ID, "actor-1")
	require.NoError(t, err)

	summary, err := reports.PipelineSummary(ctx, env.pipeline.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalLeads)
	assert.Equal(t, 4000.0, summary.OpenValue)
	assert.Equal(t, 10000.0, summary.WonValue)
	// открытые лиды на New с вероятностью 10%
	assert.InDelta(t, 400.0, summary.Forecast, 0.01)

	require.Len(t, summary.Stages, 4)
	assert.Equal(t, "New", summary.Stages[0].Name)
	assert.Equal(t, 2, summary.Stages[0].Leads)
}

func TestReportService_UnknownPipeline(t *testing.T) {
	env := newLeadTestEnv(t)
	reports := NewReportService(env.leads.Repo, env.pipelines.Repo)

	_, err := reports.PipelineSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
