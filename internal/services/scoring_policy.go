package services

import (
	"math"

	"salesflow/internal/models"
)

// ScoringPolicy is pure and deterministic: no I/O, no side effects. Any
// implementation with this signature can replace the default one.
type ScoringPolicy interface {
	Score(lead *models.Lead, stage *models.Stage) (score, probability int)
}

// StageProbabilityPolicy — дефолтная политика: вероятность берётся из
// таблицы по имени этапа, score — взвешенная смесь вероятности и
// нормализованной суммы сделки.
type StageProbabilityPolicy struct {
	ValueCeiling       float64        // сумма, дающая максимум вклада в score
	ValueWeight        float64        // 0..1
	BaseProbabilities  map[string]int // по имени этапа
	DefaultProbability int
}

func NewStageProbabilityPolicy(valueCeiling, valueWeight float64, base map[string]int, defaultProbability int) *StageProbabilityPolicy {
	if valueCeiling <= 0 {
		valueCeiling = 100000
	}
	if valueWeight < 0 || valueWeight > 1 {
		valueWeight = 0.3
	}
	if defaultProbability < 0 || defaultProbability > 100 {
		defaultProbability = 50
	}
	return &StageProbabilityPolicy{
		ValueCeiling:       valueCeiling,
		ValueWeight:        valueWeight,
		BaseProbabilities:  base,
		DefaultProbability: defaultProbability,
	}
}

func (p *StageProbabilityPolicy) Score(lead *models.Lead, stage *models.Stage) (int, int) {
	probability := p.probabilityFor(stage)

	normValue := lead.Value / p.ValueCeiling * 100
	if normValue > 100 {
		normValue = 100
	}
	if normValue < 0 {
		normValue = 0
	}

	score := int(math.Round(p.ValueWeight*normValue + (1-p.ValueWeight)*float64(probability)))
	return clampScore(score), probability
}

func (p *StageProbabilityPolicy) probabilityFor(stage *models.Stage) int {
	switch stage.Terminal {
	case models.TerminalWon:
		return 100
	case models.TerminalLost:
		return 0
	}
	if base, ok := p.BaseProbabilities[stage.Name]; ok {
		return clampScore(base)
	}
	return p.DefaultProbability
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
