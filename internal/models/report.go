package models

// StageTotals — агрегат по одному этапу для отчётов.
type StageTotals struct {
	StageID  string  `json:"stage_id"`
	Leads    int     `json:"leads"`
	Value    float64 `json:"value"`
	Weighted float64 `json:"weighted"` // SUM(value * probability / 100)
}
