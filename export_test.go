package main

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	list := []Interaction{
		{
			ID:        "b",
			AgentName: "Bruno",
			Date:      "02/01/2026",
			Result: &AnalysisResult{
				EvaluationStatus: StatusNCG,
				TotalScore:       0,
				ReasonForCall:    "Desligamento indevido",
				IsNcgDetected:    true,
			},
			CreatedAt: time.Now(),
		},
		{ID: "a", AgentName: "Ana", Date: "01/01/2026", CreatedAt: time.Now()},
	}
	stats := ComputeDashboardStats(list)

	path, err := ExportWorkbook(list, stats, t.TempDir())
	if err != nil {
		t.Fatalf("ExportWorkbook failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	if err != nil {
		t.Fatalf("reading history sheet failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Bruno" || rows[1][3] != string(StatusNCG) {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
	if rows[2][3] != "PENDENTE" {
		t.Fatalf("expected PENDENTE for missing result, got %v", rows[2])
	}

	total, err := f.GetCellValue(summarySheet, "B1")
	if err != nil {
		t.Fatalf("reading summary cell failed: %v", err)
	}
	if total != "1" {
		t.Fatalf("expected 1 evaluated audit in summary, got %q", total)
	}
}
