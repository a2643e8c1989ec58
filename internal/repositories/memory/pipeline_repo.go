package memory

import (
	"context"
	"sync"

	"salesflow/internal/models"
)

type PipelineRepo struct {
	mu    sync.RWMutex
	items map[string]*models.PipelineDefinition
}

func NewPipelineRepo() *PipelineRepo {
	return &PipelineRepo{items: make(map[string]*models.PipelineDefinition)}
}

func (r *PipelineRepo) Create(_ context.Context, p *models.PipelineDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = copyPipeline(p)
	return nil
}

func (r *PipelineRepo) GetByID(_ context.Context, id string) (*models.PipelineDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return copyPipeline(p), nil
}

func copyPipeline(p *models.PipelineDefinition) *models.PipelineDefinition {
	cp := *p
	cp.Stages = append([]models.Stage(nil), p.Stages...)
	return &cp
}
