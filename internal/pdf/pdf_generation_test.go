package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesflow/internal/models"
)

func TestGenerateTimeline(t *testing.T) {
	gen := NewTimelineGenerator()

	lead := &models.Lead{
		ID:        "lead-1",
		ContactID: "contact-1",
		StageID:   "s2",
		Status:    models.LeadOpen,
		Value:     50000,
	}
	data, err := gen.GenerateTimeline(TimelineData{
		Lead:       lead,
		StageNames: map[string]string{"s1": "New", "s2": "Qualified"},
		Records: []*models.TransitionRecord{
			{LeadID: "lead-1", Seq: 1, FromStageID: "s1", ToStageID: "s2", ActorID: "actor-1", Score: 22, Probability: 35, CreatedAt: time.Now()},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateTimeline_NoLead(t *testing.T) {
	gen := NewTimelineGenerator()

	_, err := gen.GenerateTimeline(TimelineData{})
	assert.Error(t, err)
}
