package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesflow/internal/models"
	"salesflow/internal/repositories/memory"
)

type fakeEmailService struct {
	sent []string
	err  error
}

func (f *fakeEmailService) SendLeadClosedEmail(to string, lead *models.Lead, stage *models.Stage) error {
	f.sent = append(f.sent, to)
	return f.err
}

func TestCloseNotifier_Email(t *testing.T) {
	email := &fakeEmailService{}
	notifier := NewCloseNotifier(email, "sales@example.com", nil)

	err := notifier.LeadClosed(&models.Lead{ID: "l1", Status: models.LeadWon}, &models.Stage{Name: "Won"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales@example.com"}, email.sent)
}

func TestCloseNotifier_EmailFailure(t *testing.T) {
	email := &fakeEmailService{err: errors.New("smtp down")}
	notifier := NewCloseNotifier(email, "sales@example.com", nil)

	err := notifier.LeadClosed(&models.Lead{ID: "l1"}, &models.Stage{Name: "Lost"})
	assert.Error(t, err)
}

func TestCloseNotifier_NothingConfigured(t *testing.T) {
	notifier := NewCloseNotifier(nil, "", nil)

	err := notifier.LeadClosed(&models.Lead{ID: "l1"}, &models.Stage{Name: "Won"})
	assert.NoError(t, err)
}

type recordingNotifier struct {
	closed []string
}

func (r *recordingNotifier) LeadClosed(lead *models.Lead, stage *models.Stage) error {
	r.closed = append(r.closed, lead.ID)
	return nil
}

// Нотификация уходит только при закрытии и не ломает сам переход.
func TestLeadService_NotifiesOnClose(t *testing.T) {
	pipelineRepo := memory.NewPipelineRepo()
	leadRepo := memory.NewLeadRepo()
	policy := NewStageProbabilityPolicy(100000, 0.3, nil, 50)
	notifier := &recordingNotifier{}

	pipelines := NewPipelineService(pipelineRepo)
	leads := NewLeadService(leadRepo, pipelineRepo, leadRepo, policy, notifier)

	ctx := context.Background()
	pipeline, err := pipelines.Define(ctx, testStages())
	require.NoError(t, err)

	lead, err := leads.Create(ctx, "contact-1", pipeline.ID, pipeline.Stages[0].ID, 100)
	require.NoError(t, err)

	_, err = leads.Transition(ctx, lead.ID, pipeline.Stages[1].ID, "actor-1")
	require.NoError(t, err)
	assert.Empty(t, notifier.closed)

	_, err = leads.Convert(ctx, lead.ID, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{lead.ID}, notifier.closed)
}
