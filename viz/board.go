// ABOUTME: Terminal pipeline board rendering
// ABOUTME: Provides ASCII stage columns and bar overview for the pipeline
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/bizdesk/models"
)

// StageStats aggregates the leads sitting in one stage.
type StageStats struct {
	Stage string
	Count int
	Value int64 // in cents
}

// Summarize buckets leads by stage in display order. Stages with no leads
// are included with zero counts so the board shape stays stable.
func Summarize(leads []models.Lead) []StageStats {
	byStage := make(map[string]*StageStats)
	for _, stage := range models.Stages() {
		byStage[stage] = &StageStats{Stage: stage}
	}

	for _, l := range leads {
		stats, ok := byStage[l.Stage]
		if !ok {
			// Unknown stages are folded into their own bucket rather
			// than dropped.
			stats = &StageStats{Stage: l.Stage}
			byStage[l.Stage] = stats
		}
		stats.Count++
		stats.Value += l.Value
	}

	out := make([]StageStats, 0, len(byStage))
	for _, stage := range models.Stages() {
		out = append(out, *byStage[stage])
		delete(byStage, stage)
	}
	for _, stats := range byStage {
		out = append(out, *stats)
	}
	return out
}

// RenderBoard renders the pipeline as per-stage sections with one line per
// lead.
func RenderBoard(leads []models.Lead) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  SALES PIPELINE\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	for _, stage := range models.Stages() {
		var inStage []models.Lead
		for _, l := range leads {
			if l.Stage == stage {
				inStage = append(inStage, l)
			}
		}

		out.WriteString(strings.ToUpper(stage))
		out.WriteString("\n")
		if len(inStage) == 0 {
			out.WriteString("  (empty)\n\n")
			continue
		}
		for _, l := range inStage {
			out.WriteString(fmt.Sprintf("  %-30s %-20s $%.2f\n",
				truncate(l.Title, 30), truncate(l.ClientName, 20), float64(l.Value)/100.0))
		}
		out.WriteString("\n")
	}

	return out.String()
}

// RenderStageBars renders a compact bar overview, one line per stage.
func RenderStageBars(leads []models.Lead) string {
	stats := Summarize(leads)

	maxCount := 0
	for _, s := range stats {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	var out strings.Builder
	for _, s := range stats {
		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-11s %s  %2d ($%.2f)\n",
			s.Stage, bar, s.Count, float64(s.Value)/100.0))
	}
	return out.String()
}

func truncate(s string, max int) string {
	// Cut by runes so a multi-byte title never breaks mid-character.
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
