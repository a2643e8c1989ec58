package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"salesflow/internal/models"
)

type PipelineService struct {
	Repo PipelineRepo
}

func NewPipelineService(repo PipelineRepo) *PipelineService {
	return &PipelineService{Repo: repo}
}

type StageInput struct {
	Name     string
	Rank     int
	Terminal models.TerminalKind
}

// Define validates and stores a new pipeline definition. Definitions are
// immutable after creation: there is no update operation, evolving a
// pipeline means defining a new one.
func (s *PipelineService) Define(ctx context.Context, stages []StageInput) (*models.PipelineDefinition, error) {
	if err := validateStages(stages); err != nil {
		return nil, err
	}

	p := &models.PipelineDefinition{
		ID:        uuid.NewString(),
		Stages:    make([]models.Stage, 0, len(stages)),
		CreatedAt: time.Now(),
	}
	for _, in := range stages {
		p.Stages = append(p.Stages, models.Stage{
			ID:       uuid.NewString(),
			Name:     in.Name,
			Rank:     in.Rank,
			Terminal: in.Terminal,
		})
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, storageError(err)
	}
	return p, nil
}

func (s *PipelineService) GetByID(ctx context.Context, id string) (*models.PipelineDefinition, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: pipeline %s", ErrNotFound, id)
	}
	return p, nil
}

func validateStages(stages []StageInput) error {
	if len(stages) == 0 {
		return fmt.Errorf("%w: at least one stage required", ErrInvalidDefinition)
	}

	won, lost := 0, 0
	prevRank := 0
	for i, st := range stages {
		if strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("%w: stage %d has empty name", ErrInvalidDefinition, i)
		}
		if i > 0 && st.Rank <= prevRank {
			return fmt.Errorf("%w: ranks must be strictly increasing", ErrInvalidDefinition)
		}
		prevRank = st.Rank

		switch st.Terminal {
		case models.TerminalNone:
		case models.TerminalWon:
			won++
		case models.TerminalLost:
			lost++
		default:
			return fmt.Errorf("%w: unknown terminal kind %q", ErrInvalidDefinition, st.Terminal)
		}
	}
	if won != 1 {
		return fmt.Errorf("%w: exactly one won stage required, got %d", ErrInvalidDefinition, won)
	}
	if lost > 1 {
		return fmt.Errorf("%w: at most one lost stage allowed, got %d", ErrInvalidDefinition, lost)
	}
	return nil
}
