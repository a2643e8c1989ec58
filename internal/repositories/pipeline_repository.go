package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"salesflow/internal/models"
)

type PipelineRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPipelineRepository(db *sql.DB, timeout time.Duration) *PipelineRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PipelineRepository{db: db, timeout: timeout}
}

func (r *PipelineRepository) Create(ctx context.Context, p *models.PipelineDefinition) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	stages, err := json.Marshal(p.Stages)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO pipeline_definitions (id, stages, created_at)
		VALUES ($1, $2, $3)
	`
	_, err = r.db.ExecContext(ctx, query, p.ID, stages, p.CreatedAt)
	return err
}

func (r *PipelineRepository) GetByID(ctx context.Context, id string) (*models.PipelineDefinition, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const query = `
		SELECT id, stages, created_at
		FROM pipeline_definitions
		WHERE id=$1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	p := &models.PipelineDefinition{}
	var stages []byte
	if err := row.Scan(&p.ID, &stages, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(stages, &p.Stages); err != nil {
		return nil, err
	}
	return p, nil
}
