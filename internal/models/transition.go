package models

import (
	"time"
)

// TransitionRecord is append-only: records are never mutated or deleted,
// and a lead with recorded transitions is never hard-deleted.
// (lead_id, seq) totally orders concurrent transitions on one lead.
type TransitionRecord struct {
	LeadID      string    `json:"lead_id"`
	Seq         int64     `json:"seq"`
	FromStageID string    `json:"from_stage_id"`
	ToStageID   string    `json:"to_stage_id"`
	ActorID     string    `json:"actor_id"`
	Score       int       `json:"score"`
	Probability int       `json:"probability"`
	CreatedAt   time.Time `json:"created_at"`
}
