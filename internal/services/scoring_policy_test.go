package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesflow/internal/models"
)

func TestStageProbabilityPolicy_Score(t *testing.T) {
	policy := NewStageProbabilityPolicy(100000, 0.3, map[string]int{"New": 10, "Qualified": 35}, 50)

	lead := &models.Lead{Value: 50000}

	score, prob := policy.Score(lead, &models.Stage{Name: "New", Terminal: models.TerminalNone})
	assert.Equal(t, 10, prob)
	assert.Equal(t, 22, score) // 0.3*50 + 0.7*10

	score, prob = policy.Score(lead, &models.Stage{Name: "Won", Terminal: models.TerminalWon})
	assert.Equal(t, 100, prob)
	assert.Equal(t, 85, score)

	score, prob = policy.Score(lead, &models.Stage{Name: "Lost", Terminal: models.TerminalLost})
	assert.Equal(t, 0, prob)
	assert.Equal(t, 15, score)

	// этап без настроенной вероятности получает дефолт
	_, prob = policy.Score(lead, &models.Stage{Name: "Unknown", Terminal: models.TerminalNone})
	assert.Equal(t, 50, prob)
}

func TestStageProbabilityPolicy_Deterministic(t *testing.T) {
	policy := NewStageProbabilityPolicy(100000, 0.3, map[string]int{"New": 10}, 50)
	lead := &models.Lead{Value: 12345}
	stage := &models.Stage{Name: "New", Terminal: models.TerminalNone}

	s1, p1 := policy.Score(lead, stage)
	s2, p2 := policy.Score(lead, stage)
	assert.Equal(t, s1, s2)
	assert.Equal(t, p1, p2)
}

func TestStageProbabilityPolicy_Bounds(t *testing.T) {
	policy := NewStageProbabilityPolicy(1000, 1.0, nil, 50)

	// значение выше потолка зажимается в 100
	score, _ := policy.Score(&models.Lead{Value: 1e9}, &models.Stage{Name: "X"})
	assert.Equal(t, 100, score)

	score, _ = policy.Score(&models.Lead{Value: -5}, &models.Stage{Name: "X"})
	assert.Equal(t, 0, score)
}
