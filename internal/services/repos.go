package services

import (
	"context"

	"salesflow/internal/models"
)

// Репозитории возвращают (nil, nil), когда записи нет; сервисы переводят
// это в ErrNotFound, а ошибки драйвера — в ErrStorage.

type PipelineRepo interface {
	Create(ctx context.Context, p *models.PipelineDefinition) error
	GetByID(ctx context.Context, id string) (*models.PipelineDefinition, error)
}

type LeadRepo interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	ListByStage(ctx context.Context, pipelineID, stageID string, limit, offset int) ([]*models.Lead, error)
	ListByContact(ctx context.Context, contactID string, limit, offset int) ([]*models.Lead, error)
	// ApplyTransition persists the updated lead and appends the record in one
	// transaction; rec.Seq is assigned inside. Both succeed or both fail.
	ApplyTransition(ctx context.Context, lead *models.Lead, rec *models.TransitionRecord) error
	StageSummary(ctx context.Context, pipelineID string) ([]models.StageTotals, error)
}

type TransitionRepo interface {
	History(ctx context.Context, leadID string, afterSeq int64, limit int) ([]*models.TransitionRecord, error)
}
