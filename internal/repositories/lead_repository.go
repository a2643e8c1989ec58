package repositories

import (
	"context"
	"database/sql"
	"log"
	"time"

	"salesflow/internal/models"
)

type LeadRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewLeadRepository(db *sql.DB, timeout time.Duration) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LeadRepository{db: db, timeout: timeout}
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const query = `
		INSERT INTO leads (id, contact_id, pipeline_id, stage_id, value, score, probability, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.ContactID, lead.PipelineID, lead.StageID,
		lead.Value, lead.Score, lead.Probability, lead.Status,
		lead.CreatedAt, lead.UpdatedAt)
	return err
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const query = `
		SELECT id, contact_id, pipeline_id, stage_id, value, score, probability, status, created_at, updated_at
		FROM leads
		WHERE id=$1
	`
	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// ApplyTransition commits the lead update and the log append as one
// transaction. The lead row is locked first, so the seq computed from
// lead_transitions cannot race with another writer.
func (r *LeadRepository) ApplyTransition(ctx context.Context, lead *models.Lead, rec *models.TransitionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var locked string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM leads WHERE id=$1 FOR UPDATE`, lead.ID).Scan(&locked); err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM lead_transitions WHERE lead_id=$1`,
		lead.ID).Scan(&rec.Seq); err != nil {
		return err
	}

	const updateQuery = `
		UPDATE leads
		SET stage_id=$1, status=$2, score=$3, probability=$4, updated_at=$5
		WHERE id=$6
	`
	if _, err := tx.ExecContext(ctx, updateQuery,
		lead.StageID, lead.Status, lead.Score, lead.Probability, lead.UpdatedAt, lead.ID); err != nil {
		return err
	}

	const insertQuery = `
		INSERT INTO lead_transitions (lead_id, seq, from_stage_id, to_stage_id, actor_id, score, probability, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, insertQuery,
		rec.LeadID, rec.Seq, rec.FromStageID, rec.ToStageID, rec.ActorID,
		rec.Score, rec.Probability, rec.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *LeadRepository) ListByStage(ctx context.Context, pipelineID, stageID string, limit, offset int) ([]*models.Lead, error) {
	const query = `
		SELECT id, contact_id, pipeline_id, stage_id, value, score, probability, status, created_at, updated_at
		FROM leads
		WHERE pipeline_id=$1 AND stage_id=$2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryLeads(ctx, query, pipelineID, stageID, limit, offset)
}

func (r *LeadRepository) ListByContact(ctx context.Context, contactID string, limit, offset int) ([]*models.Lead, error) {
	const query = `
		SELECT id, contact_id, pipeline_id, stage_id, value, score, probability, status, created_at, updated_at
		FROM leads
		WHERE contact_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryLeads(ctx, query, contactID, limit, offset)
}

func (r *LeadRepository) StageSummary(ctx context.Context, pipelineID string) ([]models.StageTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const query = `
		SELECT stage_id, COUNT(*), COALESCE(SUM(value), 0), COALESCE(SUM(value * probability / 100.0), 0)
		FROM leads
		WHERE pipeline_id=$1
		GROUP BY stage_id
	`
	rows, err := r.db.QueryContext(ctx, query, pipelineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StageTotals
	for rows.Next() {
		var t models.StageTotals
		if err := rows.Scan(&t.StageID, &t.Leads, &t.Value, &t.Weighted); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...interface{}) ([]*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	lead := &models.Lead{}
	err := row.Scan(&lead.ID, &lead.ContactID, &lead.PipelineID, &lead.StageID,
		&lead.Value, &lead.Score, &lead.Probability, &lead.Status,
		&lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return lead, nil
}
