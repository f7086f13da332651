// ABOUTME: Financial dashboard MCP tool handlers
// ABOUTME: Implements financial_metrics over snapshot history
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/bizdesk/dashboard"
	"github.com/harperreed/bizdesk/db"
	"github.com/harperreed/bizdesk/models"
)

type DashboardHandlers struct {
	db *sql.DB
}

func NewDashboardHandlers(database *sql.DB) *DashboardHandlers {
	return &DashboardHandlers{db: database}
}

type FinancialMetricsInput struct{}

type FinancialMetricsOutput struct {
	Period  string               `json:"period"`
	Data    models.FinancialData `json:"data"`
	Metrics dashboard.Metrics    `json:"metrics"`
	Deltas  *dashboard.Deltas    `json:"deltas,omitempty"`
}

func (h *DashboardHandlers) FinancialMetrics(_ context.Context, _ *mcp.CallToolRequest, _ FinancialMetricsInput) (*mcp.CallToolResult, FinancialMetricsOutput, error) {
	current, previous, err := db.LatestPair(h.db)
	if err != nil {
		return nil, FinancialMetricsOutput{}, fmt.Errorf("failed to load snapshots: %w", err)
	}
	if current == nil {
		return nil, FinancialMetricsOutput{}, fmt.Errorf("no financial snapshots recorded yet")
	}

	out := FinancialMetricsOutput{
		Period:  current.Period,
		Data:    current.FinancialData,
		Metrics: dashboard.Compute(current.FinancialData),
	}
	if previous != nil {
		d := dashboard.Compare(current.FinancialData, previous.FinancialData)
		out.Deltas = &d
	}

	return nil, out, nil
}

type RecordSnapshotInput struct {
	Period             string  `json:"period,omitempty" jsonschema:"Reporting period, e.g. 2026-08 (defaults to current month)"`
	Revenue            float64 `json:"revenue,omitempty" jsonschema:"Total revenue"`
	COGS               float64 `json:"cogs,omitempty" jsonschema:"Cost of goods sold"`
	Payroll            float64 `json:"payroll,omitempty" jsonschema:"Payroll expense"`
	Marketing          float64 `json:"marketing,omitempty" jsonschema:"Marketing expense"`
	Rent               float64 `json:"rent,omitempty" jsonschema:"Rent expense"`
	Utilities          float64 `json:"utilities,omitempty" jsonschema:"Utilities expense"`
	OtherExpenses      float64 `json:"other_expenses,omitempty" jsonschema:"Other operating expenses"`
	CashBalance        float64 `json:"cash_balance,omitempty" jsonschema:"Cash on hand"`
	AccountsReceivable float64 `json:"accounts_receivable,omitempty" jsonschema:"Accounts receivable"`
	AccountsPayable    float64 `json:"accounts_payable,omitempty" jsonschema:"Accounts payable"`
	Loans              float64 `json:"loans,omitempty" jsonschema:"Outstanding loans"`
}

type RecordSnapshotOutput struct {
	ID      string            `json:"id"`
	Period  string            `json:"period"`
	Metrics dashboard.Metrics `json:"metrics"`
}

func (h *DashboardHandlers) RecordSnapshot(_ context.Context, _ *mcp.CallToolRequest, input RecordSnapshotInput) (*mcp.CallToolResult, RecordSnapshotOutput, error) {
	snap := models.FinancialSnapshot{
		Period: input.Period,
		FinancialData: models.FinancialData{
			Revenue:            input.Revenue,
			COGS:               input.COGS,
			Payroll:            input.Payroll,
			Marketing:          input.Marketing,
			Rent:               input.Rent,
			Utilities:          input.Utilities,
			OtherExpenses:      input.OtherExpenses,
			CashBalance:        input.CashBalance,
			AccountsReceivable: input.AccountsReceivable,
			AccountsPayable:    input.AccountsPayable,
			Loans:              input.Loans,
		},
	}

	if err := db.CreateSnapshot(h.db, &snap); err != nil {
		return nil, RecordSnapshotOutput{}, fmt.Errorf("failed to record snapshot: %w", err)
	}

	return nil, RecordSnapshotOutput{
		ID:      snap.ID.String(),
		Period:  snap.Period,
		Metrics: dashboard.Compute(snap.FinancialData),
	}, nil
}
