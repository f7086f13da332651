// ABOUTME: AI-generated CFO report over the financial snapshot
// ABOUTME: Prompt construction and three-section response validation
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/harperreed/bizdesk/models"
)

const defaultReportModel = "gemini-2.5-flash"

// requiredSections is the structural contract of the generated report; a
// response missing any heading is a format error.
var requiredSections = []string{
	"1. Financial Overview",
	"2. Strategic CFO Initiatives",
	"3. Recommendations",
}

// ReportGenerator calls the text-generation endpoint. Attempt-once: there is
// no retry, a failure surfaces directly to the caller.
type ReportGenerator struct {
	client *genai.Client
	model  string
}

func NewReportGenerator(ctx context.Context, apiKey, model string) (*ReportGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY)")
	}
	if model == "" {
		model = defaultReportModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &ReportGenerator{client: client, model: model}, nil
}

// Generate produces a CFO report from the snapshot and validates its
// structure.
func (g *ReportGenerator) Generate(ctx context.Context, d models.FinancialData) (string, error) {
	prompt := buildPrompt(d, Compute(d))

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("report generation failed: %w", err)
	}

	text := result.Text()
	if err := ValidateReport(text); err != nil {
		return "", err
	}
	return text, nil
}

// ValidateReport checks the three-section structural contract.
func ValidateReport(text string) error {
	for _, section := range requiredSections {
		if !strings.Contains(text, section) {
			return fmt.Errorf("report is missing required section %q", section)
		}
	}
	return nil
}

func buildPrompt(d models.FinancialData, m Metrics) string {
	var b strings.Builder
	b.WriteString("You are a CFO advisor. Write a concise report for the CEO based on these figures.\n\n")
	fmt.Fprintf(&b, "Revenue: %.2f\n", d.Revenue)
	fmt.Fprintf(&b, "Cost of goods sold: %.2f\n", d.COGS)
	fmt.Fprintf(&b, "Total expenses: %.2f\n", m.TotalExpenses)
	fmt.Fprintf(&b, "Net profit: %.2f (margin %.1f%%)\n", m.NetProfit, m.NetMargin)
	fmt.Fprintf(&b, "Cash balance: %.2f\n", d.CashBalance)
	fmt.Fprintf(&b, "Working capital: %.2f\n", m.WorkingCapital)
	fmt.Fprintf(&b, "Debt ratio: %.2f\n\n", m.DebtRatio)
	b.WriteString("Structure the report with exactly these numbered section headings:\n")
	for _, section := range requiredSections {
		b.WriteString(section)
		b.WriteString("\n")
	}
	return b.String()
}
