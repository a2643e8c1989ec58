package repositories

import (
	"context"
	"database/sql"
	"log"
	"time"

	"salesflow/internal/models"
)

// TransitionRepository only reads: записи пишутся исключительно внутри
// LeadRepository.ApplyTransition, отдельного append нет.
type TransitionRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTransitionRepository(db *sql.DB, timeout time.Duration) *TransitionRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TransitionRepository{db: db, timeout: timeout}
}

func (r *TransitionRepository) History(ctx context.Context, leadID string, afterSeq int64, limit int) ([]*models.TransitionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT lead_id, seq, from_stage_id, to_stage_id, actor_id, score, probability, created_at
		FROM lead_transitions
		WHERE lead_id=$1 AND seq > $2
		ORDER BY seq ASC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, leadID, afterSeq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TransitionRecord
	for rows.Next() {
		rec := &models.TransitionRecord{}
		if err := rows.Scan(&rec.LeadID, &rec.Seq, &rec.FromStageID, &rec.ToStageID,
			&rec.ActorID, &rec.Score, &rec.Probability, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
