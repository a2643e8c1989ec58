package models

import (
	"time"
)

type TerminalKind string

const (
	TerminalNone TerminalKind = "none"
	TerminalWon  TerminalKind = "won"
	TerminalLost TerminalKind = "lost"
)

type Stage struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Rank     int          `json:"rank"`
	Terminal TerminalKind `json:"terminal"`
}

// PipelineDefinition is immutable once stored: evolving a pipeline means
// defining a new one and migrating leads explicitly.
type PipelineDefinition struct {
	ID        string    `json:"id"`
	Stages    []Stage   `json:"stages"` // отсортированы по rank
	CreatedAt time.Time `json:"created_at"`
}

func (p *PipelineDefinition) StageByID(id string) *Stage {
	for i := range p.Stages {
		if p.Stages[i].ID == id {
			return &p.Stages[i]
		}
	}
	return nil
}

func (p *PipelineDefinition) WonStage() *Stage {
	for i := range p.Stages {
		if p.Stages[i].Terminal == TerminalWon {
			return &p.Stages[i]
		}
	}
	return nil
}
