// ABOUTME: Tests for CFO report prompt and response validation
// ABOUTME: Covers the three-section structural contract
package dashboard

import (
	"strings"
	"testing"

	"github.com/harperreed/bizdesk/models"
)

func TestValidateReportAcceptsAllSections(t *testing.T) {
	text := `1. Financial Overview
Revenue grew nicely.

2. Strategic CFO Initiatives
Hire a controller.

3. Recommendations
Keep going.`

	if err := ValidateReport(text); err != nil {
		t.Errorf("ValidateReport failed: %v", err)
	}
}

func TestValidateReportRejectsMissingSection(t *testing.T) {
	text := `1. Financial Overview
Revenue grew nicely.

3. Recommendations
Keep going.`

	err := ValidateReport(text)
	if err == nil {
		t.Fatal("Expected format error for missing section")
	}
	if !strings.Contains(err.Error(), "2. Strategic CFO Initiatives") {
		t.Errorf("Error should name the missing section: %v", err)
	}
}

func TestBuildPromptContainsFigures(t *testing.T) {
	d := models.FinancialData{Revenue: 200000, COGS: 80000, CashBalance: 60000}
	prompt := buildPrompt(d, Compute(d))

	for _, want := range []string{"200000.00", "80000.00", "60000.00"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %s:\n%s", want, prompt)
		}
	}
	for _, section := range requiredSections {
		if !strings.Contains(prompt, section) {
			t.Errorf("Prompt missing section heading %q", section)
		}
	}
}
