package memory

import (
	"context"
	"sort"
	"sync"

	"salesflow/internal/models"
)

// LeadRepo держит лиды и их журнал переходов под одним мьютексом, поэтому
// ApplyTransition атомарен так же, как транзакция в postgres-варианте.
// Он реализует и LeadRepo, и TransitionRepo сервисного слоя.
type LeadRepo struct {
	mu          sync.RWMutex
	leads       map[string]*models.Lead
	transitions map[string][]*models.TransitionRecord
}

func NewLeadRepo() *LeadRepo {
	return &LeadRepo{
		leads:       make(map[string]*models.Lead),
		transitions: make(map[string][]*models.TransitionRecord),
	}
}

func (r *LeadRepo) Create(_ context.Context, lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *LeadRepo) GetByID(_ context.Context, id string) (*models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *lead
	return &cp, nil
}

func (r *LeadRepo) ApplyTransition(_ context.Context, lead *models.Lead, rec *models.TransitionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.Seq = int64(len(r.transitions[lead.ID])) + 1

	leadCopy := *lead
	recCopy := *rec
	r.leads[lead.ID] = &leadCopy
	r.transitions[lead.ID] = append(r.transitions[lead.ID], &recCopy)
	return nil
}

func (r *LeadRepo) ListByStage(_ context.Context, pipelineID, stageID string, limit, offset int) ([]*models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Lead
	for _, lead := range r.leads {
		if lead.PipelineID == pipelineID && lead.StageID == stageID {
			cp := *lead
			out = append(out, &cp)
		}
	}
	return paginate(sortByCreated(out), limit, offset), nil
}

func (r *LeadRepo) ListByContact(_ context.Context, contactID string, limit, offset int) ([]*models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Lead
	for _, lead := range r.leads {
		if lead.ContactID == contactID {
			cp := *lead
			out = append(out, &cp)
		}
	}
	return paginate(sortByCreated(out), limit, offset), nil
}

func (r *LeadRepo) StageSummary(_ context.Context, pipelineID string) ([]models.StageTotals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byStage := make(map[string]*models.StageTotals)
	for _, lead := range r.leads {
		if lead.PipelineID != pipelineID {
			continue
		}
		t, ok := byStage[lead.StageID]
		if !ok {
			t = &models.StageTotals{StageID: lead.StageID}
			byStage[lead.StageID] = t
		}
		t.Leads++
		t.Value += lead.Value
		t.Weighted += lead.Value * float64(lead.Probability) / 100
	}
	out := make([]models.StageTotals, 0, len(byStage))
	for _, t := range byStage {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StageID < out[j].StageID })
	return out, nil
}

func (r *LeadRepo) History(_ context.Context, leadID string, afterSeq int64, limit int) ([]*models.TransitionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	var out []*models.TransitionRecord
	for _, rec := range r.transitions[leadID] {
		if rec.Seq <= afterSeq {
			continue
		}
		cp := *rec
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func sortByCreated(leads []*models.Lead) []*models.Lead {
	sort.Slice(leads, func(i, j int) bool {
		if leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].ID < leads[j].ID
		}
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads
}

func paginate(leads []*models.Lead, limit, offset int) []*models.Lead {
	if offset >= len(leads) {
		return nil
	}
	leads = leads[offset:]
	if limit > 0 && limit < len(leads) {
		leads = leads[:limit]
	}
	return leads
}
