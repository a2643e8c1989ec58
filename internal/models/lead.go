package models

import (
	"time"
)

type LeadStatus string

const (
	LeadOpen LeadStatus = "open"
	LeadWon  LeadStatus = "won"
	LeadLost LeadStatus = "lost"
)

type Lead struct {
	ID          string     `json:"id"`
	ContactID   string     `json:"contact_id"` // внешний id, не моделируем
	PipelineID  string     `json:"pipeline_id"`
	StageID     string     `json:"stage_id"`
	Value       float64    `json:"value"`
	Score       int        `json:"score"`       // 0..100
	Probability int        `json:"probability"` // 0..100
	Status      LeadStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (l *Lead) Closed() bool {
	return l.Status != LeadOpen
}
