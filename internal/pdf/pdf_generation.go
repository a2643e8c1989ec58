package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"salesflow/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateTimeline(data TimelineData) ([]byte, error)
}

type TimelineData struct {
	Lead       *models.Lead
	StageNames map[string]string // stage id -> имя этапа
	Records    []*models.TransitionRecord
}

type TimelineGenerator struct{}

func NewTimelineGenerator() *TimelineGenerator {
	return &TimelineGenerator{}
}

func (g *TimelineGenerator) GenerateTimeline(data TimelineData) ([]byte, error) {
	if data.Lead == nil {
		return nil, fmt.Errorf("lead is required")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Lead %s timeline", data.Lead.ID), false)
	doc.SetAuthor("salesflow", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Lead timeline", "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Lead: %s", data.Lead.ID), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Contact: %s", data.Lead.ContactID), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Status: %s  Stage: %s", data.Lead.Status, g.stageName(data, data.Lead.StageID)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Value: %.2f  Score: %d  Probability: %d%%", data.Lead.Value, data.Lead.Score, data.Lead.Probability), "", 1, "L", false, 0, "")
	doc.Ln(4)

	// шапка таблицы
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(10, 7, "#", "1", 0, "C", false, 0, "")
	doc.CellFormat(40, 7, "From", "1", 0, "L", false, 0, "")
	doc.CellFormat(40, 7, "To", "1", 0, "L", false, 0, "")
	doc.CellFormat(35, 7, "Actor", "1", 0, "L", false, 0, "")
	doc.CellFormat(20, 7, "Score", "1", 0, "C", false, 0, "")
	doc.CellFormat(25, 7, "When", "1", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	for _, rec := range data.Records {
		doc.CellFormat(10, 7, fmt.Sprintf("%d", rec.Seq), "1", 0, "C", false, 0, "")
		doc.CellFormat(40, 7, g.stageName(data, rec.FromStageID), "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, g.stageName(data, rec.ToStageID), "1", 0, "L", false, 0, "")
		doc.CellFormat(35, 7, rec.ActorID, "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d/%d%%", rec.Score, rec.Probability), "1", 0, "C", false, 0, "")
		doc.CellFormat(25, 7, rec.CreatedAt.Format("02.01.2006 15:04"), "1", 1, "C", false, 0, "")
	}
	if len(data.Records) == 0 {
		doc.CellFormat(170, 7, "No transitions recorded", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *TimelineGenerator) stageName(data TimelineData, stageID string) string {
	if name, ok := data.StageNames[stageID]; ok {
		return name
	}
	return stageID
}
