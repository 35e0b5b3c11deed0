package main

import "testing"

func TestDefaultScorecardWeightsSumToBudget(t *testing.T) {
	if got := DefaultScorecard.TotalWeight(); got != 100 {
		t.Fatalf("expected scorecard weights to sum to 100, got %d", got)
	}
}

func TestDefaultScorecardIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range DefaultScorecard {
		if seen[c.ID] {
			t.Fatalf("duplicate criterion id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestScorecardByID(t *testing.T) {
	c, ok := DefaultScorecard.ByID("4.8")
	if !ok {
		t.Fatal("expected to find criterion 4.8")
	}
	if c.Weight != 7 {
		t.Fatalf("expected 4.8 weight 7, got %d", c.Weight)
	}
	if c.Category != "4. Diálogo" {
		t.Fatalf("unexpected category for 4.8: %s", c.Category)
	}
	if _, ok := DefaultScorecard.ByID("9.9"); ok {
		t.Fatal("expected lookup of unknown id to fail")
	}
}

func TestScorecardGroupsPreserveOrder(t *testing.T) {
	groups := DefaultScorecard.Groups()
	want := []string{
		"1. Abertura",
		"2. Atualização Cadastral",
		"4. Diálogo",
		"5. Conhecimento",
		"6. Finalização",
		"Sistema",
	}
	if len(groups) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(groups))
	}
	for i, g := range groups {
		if g.Category != want[i] {
			t.Fatalf("category[%d] = %s, want %s", i, g.Category, want[i])
		}
	}
	dialogo := groups[2]
	if len(dialogo.Criteria) != 8 {
		t.Fatalf("expected 8 criteria in Diálogo, got %d", len(dialogo.Criteria))
	}
	if dialogo.Criteria[0].ID != "4.1" || dialogo.Criteria[7].ID != "4.8" {
		t.Fatalf("Diálogo criteria out of order: first=%s last=%s", dialogo.Criteria[0].ID, dialogo.Criteria[7].ID)
	}
}

func TestAutoConformeCriteria(t *testing.T) {
	fixed := DefaultScorecard.AutoConformeCriteria()
	if len(fixed) != 5 {
		t.Fatalf("expected 5 auto-conforme criteria, got %d", len(fixed))
	}
	for _, c := range fixed {
		if !DefaultScorecard.IsAutoConforme(c.ID) {
			t.Fatalf("IsAutoConforme(%s) = false, want true", c.ID)
		}
	}
	if DefaultScorecard.IsAutoConforme("4.1") {
		t.Fatal("4.1 should not be auto-conforme")
	}
	// A fixed id missing from the catalog is not auto-conforme.
	small := Scorecard{{ID: "1.1", Category: "A", Name: "1.1", Weight: 10}}
	if small.IsAutoConforme("BONUS") {
		t.Fatal("BONUS is not in the small catalog, should not be auto-conforme")
	}
}
