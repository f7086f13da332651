// ABOUTME: Tests for pipeline board rendering
// ABOUTME: Covers stage bucketing and stable board shape
package viz

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/harperreed/bizdesk/models"
)

func TestSummarize(t *testing.T) {
	leads := []models.Lead{
		{Title: "A", Stage: models.StageWarmLead, Value: 1000},
		{Title: "B", Stage: models.StageWarmLead, Value: 2000},
		{Title: "C", Stage: models.StageWon, Value: 5000},
	}

	stats := Summarize(leads)

	if len(stats) != len(models.Stages()) {
		t.Fatalf("Expected %d stage buckets, got %d", len(models.Stages()), len(stats))
	}
	if stats[0].Stage != models.StageWarmLead || stats[0].Count != 2 || stats[0].Value != 3000 {
		t.Errorf("warm-lead bucket wrong: %+v", stats[0])
	}

	var won StageStats
	for _, s := range stats {
		if s.Stage == models.StageWon {
			won = s
		}
	}
	if won.Count != 1 || won.Value != 5000 {
		t.Errorf("won bucket wrong: %+v", won)
	}
}

func TestSummarizeKeepsUnknownStages(t *testing.T) {
	leads := []models.Lead{{Title: "X", Stage: "legacy-stage", Value: 100}}

	stats := Summarize(leads)

	found := false
	for _, s := range stats {
		if s.Stage == "legacy-stage" && s.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Error("Unknown stage should get its own bucket")
	}
}

func TestRenderBoard(t *testing.T) {
	leads := []models.Lead{
		{Title: "Enterprise License", ClientName: "Acme", Stage: models.StageProposal, Value: 250000},
	}

	board := RenderBoard(leads)

	if !strings.Contains(board, "SALES PIPELINE") {
		t.Error("Board missing header")
	}
	if !strings.Contains(board, "Enterprise License") {
		t.Error("Board missing lead title")
	}
	if !strings.Contains(board, "$2500.00") {
		t.Error("Board missing lead value")
	}
	for _, stage := range models.Stages() {
		if !strings.Contains(board, strings.ToUpper(stage)) {
			t.Errorf("Board missing stage section %s", stage)
		}
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("ü", 40)

	got := truncate(long, 30)

	if !utf8.ValidString(got) {
		t.Errorf("Truncated string is not valid UTF-8: %q", got)
	}
	if want := strings.Repeat("ü", 29) + "…"; got != want {
		t.Errorf("truncate = %q, want %q", got, want)
	}
	if short := truncate("ok", 30); short != "ok" {
		t.Errorf("Short strings should pass through, got %q", short)
	}
}

func TestRenderStageBarsEmptyPipeline(t *testing.T) {
	out := RenderStageBars(nil)
	if !strings.Contains(out, models.StageWarmLead) {
		t.Error("Bars should render every stage even when empty")
	}
}
