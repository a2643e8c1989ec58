package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"salesflow/internal/models"
)

// Notifier gets called after a lead reaches a terminal stage. Failures are
// logged and swallowed: the transition is already committed.
type Notifier interface {
	LeadClosed(lead *models.Lead, stage *models.Stage) error
}

type LeadService struct {
	Repo        LeadRepo
	Pipelines   PipelineRepo
	Transitions TransitionRepo
	Policy      ScoringPolicy
	Notifier    Notifier // может быть nil

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLeadService(leadRepo LeadRepo, pipelineRepo PipelineRepo, transitionRepo TransitionRepo, policy ScoringPolicy, notifier Notifier) *LeadService {
	return &LeadService{
		Repo:        leadRepo,
		Pipelines:   pipelineRepo,
		Transitions: transitionRepo,
		Policy:      policy,
		Notifier:    notifier,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *LeadService) Create(ctx context.Context, contactID, pipelineID, stageID string, value float64) (*models.Lead, error) {
	pipeline, err := s.Pipelines.GetByID(ctx, pipelineID)
	if err != nil {
		return nil, storageError(err)
	}
	if pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline %s", ErrNotFound, pipelineID)
	}

	stage := pipeline.StageByID(stageID)
	if stage == nil {
		return nil, fmt.Errorf("%w: stage %s not in pipeline %s", ErrInvalidStage, stageID, pipelineID)
	}
	// лид не может родиться закрытым
	if stage.Terminal != models.TerminalNone {
		return nil, fmt.Errorf("%w: initial stage must be non-terminal", ErrInvalidStage)
	}

	now := time.Now()
	lead := &models.Lead{
		ID:         uuid.NewString(),
		ContactID:  contactID,
		PipelineID: pipelineID,
		StageID:    stageID,
		Value:      value,
		Status:     models.LeadOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	lead.Score, lead.Probability = s.Policy.Score(lead, stage)

	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, storageError(err)
	}
	return lead, nil
}

// Transition moves a lead forward in its pipeline. Transitions on one lead
// are serialized via a per-lead lock; different leads proceed in parallel.
// The lead update and its TransitionRecord are committed as one unit.
func (s *LeadService) Transition(ctx context.Context, leadID, targetStageID, actorID string) (*models.Lead, error) {
	lock := s.lockFor(leadID)
	lock.Lock()
	defer lock.Unlock()

	lead, err := s.Repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, storageError(err)
	}
	if lead == nil {
		return nil, fmt.Errorf("%w: lead %s", ErrNotFound, leadID)
	}
	if lead.Closed() {
		return nil, fmt.Errorf("%w: lead %s is %s", ErrClosedLead, leadID, lead.Status)
	}

	pipeline, err := s.Pipelines.GetByID(ctx, lead.PipelineID)
	if err != nil {
		return nil, storageError(err)
	}
	if pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline %s", ErrNotFound, lead.PipelineID)
	}

	target := pipeline.StageByID(targetStageID)
	if target == nil {
		return nil, fmt.Errorf("%w: stage %s not in pipeline %s", ErrInvalidStage, targetStageID, lead.PipelineID)
	}
	current := pipeline.StageByID(lead.StageID)
	if current == nil {
		return nil, fmt.Errorf("%w: stage %s not in pipeline %s", ErrInvalidStage, lead.StageID, lead.PipelineID)
	}
	// только вперёд: сделка двигается или закрывается, отката нет
	if target.Rank < current.Rank {
		return nil, fmt.Errorf("%w: %s (rank %d) -> %s (rank %d)", ErrIllegalTransition, current.Name, current.Rank, target.Name, target.Rank)
	}

	fromStageID := lead.StageID
	lead.StageID = target.ID
	switch target.Terminal {
	case models.TerminalWon:
		lead.Status = models.LeadWon
	case models.TerminalLost:
		lead.Status = models.LeadLost
	default:
		lead.Status = models.LeadOpen
	}
	lead.Score, lead.Probability = s.Policy.Score(lead, target)
	lead.UpdatedAt = time.Now()

	rec := &models.TransitionRecord{
		LeadID:      lead.ID,
		FromStageID: fromStageID,
		ToStageID:   target.ID,
		ActorID:     actorID,
		Score:       lead.Score,
		Probability: lead.Probability,
		CreatedAt:   lead.UpdatedAt,
	}

	if err := s.Repo.ApplyTransition(ctx, lead, rec); err != nil {
		return nil, storageError(err)
	}

	if lead.Closed() && s.Notifier != nil {
		if err := s.Notifier.LeadClosed(lead, target); err != nil {
			log.Printf("lead %s closed, notification failed: %v", lead.ID, err)
		}
	}
	return lead, nil
}

// Convert переводит лид в терминальный won-этап его воронки.
func (s *LeadService) Convert(ctx context.Context, leadID, actorID string) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, storageError(err)
	}
	if lead == nil {
		return nil, fmt.Errorf("%w: lead %s", ErrNotFound, leadID)
	}

	pipeline, err := s.Pipelines.GetByID(ctx, lead.PipelineID)
	if err != nil {
		return nil, storageError(err)
	}
	if pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline %s", ErrNotFound, lead.PipelineID)
	}

	won := pipeline.WonStage()
	if won == nil {
		return nil, fmt.Errorf("%w: pipeline %s has no won stage", ErrInvalidDefinition, pipeline.ID)
	}
	return s.Transition(ctx, leadID, won.ID, actorID)
}

func (s *LeadService) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	if lead == nil {
		return nil, fmt.Errorf("%w: lead %s", ErrNotFound, id)
	}
	return lead, nil
}

func (s *LeadService) ListByStage(ctx context.Context, pipelineID, stageID string, limit, offset int) ([]*models.Lead, error) {
	leads, err := s.Repo.ListByStage(ctx, pipelineID, stageID, limit, offset)
	if err != nil {
		return nil, storageError(err)
	}
	return leads, nil
}

func (s *LeadService) ListByContact(ctx context.Context, contactID string, limit, offset int) ([]*models.Lead, error) {
	leads, err := s.Repo.ListByContact(ctx, contactID, limit, offset)
	if err != nil {
		return nil, storageError(err)
	}
	return leads, nil
}

// History returns the lead's transition log ordered by seq. afterSeq is a
// restartable cursor: pass the last seen seq to get the next page.
func (s *LeadService) History(ctx context.Context, leadID string, afterSeq int64, limit int) ([]*models.TransitionRecord, error) {
	lead, err := s.Repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, storageError(err)
	}
	if lead == nil {
		return nil, fmt.Errorf("%w: lead %s", ErrNotFound, leadID)
	}

	records, err := s.Transitions.History(ctx, leadID, afterSeq, limit)
	if err != nil {
		return nil, storageError(err)
	}
	return records, nil
}

func (s *LeadService) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
