package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesflow/internal/models"
	"salesflow/internal/repositories/memory"
)

type leadTestEnv struct {
	pipelines *PipelineService
	leads     *LeadService
	pipeline  *models.PipelineDefinition
}

func newLeadTestEnv(t *testing.T) *leadTestEnv {
	t.Helper()

	pipelineRepo := memory.NewPipelineRepo()
	leadRepo := memory.NewLeadRepo()
	policy := NewStageProbabilityPolicy(100000, 0.3, map[string]int{"New": 10, "Qualified": 35}, 50)

	pipelines := NewPipelineService(pipelineRepo)
	leads := NewLeadService(leadRepo, pipelineRepo, leadRepo, policy, nil)

	pipeline, err := pipelines.Define(context.Background(), testStages())
	require.NoError(t, err)

	return &leadTestEnv{pipelines: pipelines, leads: leads, pipeline: pipeline}
}

func (e *leadTestEnv) stage(name string) *models.Stage {
	for i := range e.pipeline.Stages {
		if e.pipeline.Stages[i].Name == name {
			return &e.pipeline.Stages[i]
		}
	}
	return nil
}

func (e *leadTestEnv) newLead(t *testing.T, value float64) *models.Lead {
	t.Helper()
	lead, err := e.leads.Create(context.Background(), "contact-1", e.pipeline.ID, e.stage("New").ID, value)
	require.NoError(t, err)
	return lead
}

func TestLeadService_Create(t *testing.T) {
	env := newLeadTestEnv(t)

	lead := env.newLead(t, 50000)
	assert.Equal(t, models.LeadOpen, lead.Status)
	assert.Equal(t, env.stage("New").ID, lead.StageID)
	assert.Equal(t, 10, lead.Probability)
	assert.Equal(t, 22, lead.Score)
}

func TestLeadService_CreateUnknownPipeline(t *testing.T) {
	env := newLeadTestEnv(t)

	_, err := env.leads.Create(context.Background(), "contact-1", "missing", env.stage("New").ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeadService_CreateOnTerminalStage(t *testing.T) {
	env := newLeadTestEnv(t)

	_, err := env.leads.Create(context.Background(), "contact-1", env.pipeline.ID, env.stage("Won").ID, 0)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestLeadService_CreateForeignStage(t *testing.T) {
	env := newLeadTestEnv(t)

	_, err := env.leads.Create(context.Background(), "contact-1", env.pipeline.ID, "foreign-stage", 0)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

// Сценарий из жизни воронки: New -> Qualified -> Lost, потом лид закрыт.
func TestLeadService_TransitionLifecycle(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 50000)

	updated, err := env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, models.LeadOpen, updated.Status)
	assert.Equal(t, 35, updated.Probability)

	updated, err = env.leads.Transition(ctx, lead.ID, env.stage("Lost").ID, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, models.LeadLost, updated.Status)
	assert.Equal(t, 0, updated.Probability)

	// закрытый лид неизменяем
	_, err = env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "actor-1")
	assert.ErrorIs(t, err, ErrClosedLead)
}

func TestLeadService_TransitionBackwardFails(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 1000)

	_, err := env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "actor-1")
	require.NoError(t, err)

	_, err = env.leads.Transition(ctx, lead.ID, env.stage("New").ID, "actor-1")
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// неудачный переход не трогает ни лид, ни журнал
	got, err := env.leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, env.stage("Qualified").ID, got.StageID)

	history, err := env.leads.History(ctx, lead.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLeadService_TransitionUnknownLead(t *testing.T) {
	env := newLeadTestEnv(t)

	_, err := env.leads.Transition(context.Background(), "missing", env.stage("Qualified").ID, "actor-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeadService_TransitionForeignStage(t *testing.T) {
	env := newLeadTestEnv(t)
	lead := env.newLead(t, 0)

	_, err := env.leads.Transition(context.Background(), lead.ID, "foreign-stage", "actor-1")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestLeadService_Convert(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 50000)

	won, err := env.leads.Convert(ctx, lead.ID, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, models.LeadWon, won.Status)
	assert.Equal(t, env.stage("Won").ID, won.StageID)
	assert.Equal(t, 100, won.Probability)

	// повторная конвертация — лид уже закрыт
	_, err = env.leads.Convert(ctx, lead.ID, "actor-1")
	assert.ErrorIs(t, err, ErrClosedLead)
}

// Реплей журнала воспроизводит итоговый этап лида.
func TestLeadService_HistoryReplay(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 2500)

	_, err := env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "actor-1")
	require.NoError(t, err)
	_, err = env.leads.Transition(ctx, lead.ID, env.stage("Won").ID, "actor-2")
	require.NoError(t, err)

	history, err := env.leads.History(ctx, lead.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, history, 2)

	replayed := env.stage("New").ID
	for i, rec := range history {
		assert.Equal(t, int64(i+1), rec.Seq)
		assert.Equal(t, replayed, rec.FromStageID)
		replayed = rec.ToStageID
	}

	final, err := env.leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, final.StageID, replayed)
}

func TestLeadService_HistoryCursor(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 100)

	_, err := env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "actor-1")
	require.NoError(t, err)
	_, err = env.leads.Transition(ctx, lead.ID, env.stage("Won").ID, "actor-1")
	require.NoError(t, err)

	page, err := env.leads.History(ctx, lead.ID, 0, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].Seq)

	// рестарт с курсора
	page, err = env.leads.History(ctx, lead.ID, page[0].Seq, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].Seq)
}

func TestLeadService_HistoryUnknownLead(t *testing.T) {
	env := newLeadTestEnv(t)

	_, err := env.leads.History(context.Background(), "missing", 0, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeadService_Queries(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()

	a := env.newLead(t, 100)
	b, err := env.leads.Create(ctx, "contact-2", env.pipeline.ID, env.stage("New").ID, 200)
	require.NoError(t, err)
	_, err = env.leads.Transition(ctx, b.ID, env.stage("Qualified").ID, "actor-1")
	require.NoError(t, err)

	byStage, err := env.leads.ListByStage(ctx, env.pipeline.ID, env.stage("New").ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, byStage, 1)
	assert.Equal(t, a.ID, byStage[0].ID)

	byContact, err := env.leads.ListByContact(ctx, "contact-2", 100, 0)
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, b.ID, byContact[0].ID)
}

// Параллельные переходы по одному лиду сериализуются: ни одной потерянной
// записи, seq строго монотонен, итоговый этап согласован с журналом.
func TestLeadService_ConcurrentForwardTransitions(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 1000)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "actor-1")
		}()
	}
	wg.Wait()

	history, err := env.leads.History(ctx, lead.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, history, workers)
	for i, rec := range history {
		assert.Equal(t, int64(i+1), rec.Seq)
	}

	final, err := env.leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, env.stage("Qualified").ID, final.StageID)
	assert.Equal(t, models.LeadOpen, final.Status)
}

// Гонка "закрыть vs продвинуть": после обеих попыток наблюдаем ровно один
// согласованный результат, проигравший получает детерминированную ошибку.
func TestLeadService_ConcurrentCloseRace(t *testing.T) {
	env := newLeadTestEnv(t)
	ctx := context.Background()
	lead := env.newLead(t, 1000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.leads.Transition(ctx, lead.ID, env.stage("Lost").ID, "closer")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.leads.Transition(ctx, lead.ID, env.stage("Qualified").ID, "mover")
	}()
	wg.Wait()

	// закрытие успевает всегда; продвижение либо успело раньше, либо
	// упёрлось в закрытый лид
	assert.NoError(t, errs[0])
	if errs[1] != nil {
		assert.ErrorIs(t, errs[1], ErrClosedLead)
	}

	final, err := env.leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadLost, final.Status)

	history, err := env.leads.History(ctx, lead.ID, 0, 100)
	require.NoError(t, err)

	replayed := env.stage("New").ID
	for _, rec := range history {
		assert.Equal(t, replayed, rec.FromStageID)
		replayed = rec.ToStageID
	}
	assert.Equal(t, final.StageID, replayed)
}
