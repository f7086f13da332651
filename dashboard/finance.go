// ABOUTME: Financial metric calculations for the CEO dashboard
// ABOUTME: Sums, ratios, and period-over-period percentage deltas
package dashboard

import (
	"github.com/harperreed/bizdesk/models"
)

// Metrics are the derived figures shown on the dashboard. Everything here is
// plain arithmetic over form-entered numbers.
type Metrics struct {
	GrossProfit    float64 `json:"gross_profit"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetProfit      float64 `json:"net_profit"`
	GrossMargin    float64 `json:"gross_margin"` // percent
	NetMargin      float64 `json:"net_margin"`   // percent
	WorkingCapital float64 `json:"working_capital"`
	DebtRatio      float64 `json:"debt_ratio"`
}

// Deltas are percentage changes between two snapshots.
type Deltas struct {
	Revenue       float64 `json:"revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	CashBalance   float64 `json:"cash_balance"`
}

// Compute derives dashboard metrics from one set of financial figures.
func Compute(d models.FinancialData) Metrics {
	m := Metrics{}
	m.GrossProfit = d.Revenue - d.COGS
	m.TotalExpenses = d.COGS + d.Payroll + d.Marketing + d.Rent + d.Utilities + d.OtherExpenses
	m.NetProfit = d.Revenue - m.TotalExpenses
	if d.Revenue != 0 {
		m.GrossMargin = m.GrossProfit / d.Revenue * 100
		m.NetMargin = m.NetProfit / d.Revenue * 100
	}
	m.WorkingCapital = d.CashBalance + d.AccountsReceivable - d.AccountsPayable
	assets := d.CashBalance + d.AccountsReceivable
	if assets != 0 {
		m.DebtRatio = (d.AccountsPayable + d.Loans) / assets
	}
	return m
}

// PercentDelta returns the percentage change from previous to current. A
// zero previous value yields zero rather than a division blowup.
func PercentDelta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Compare derives period-over-period deltas between two snapshots.
func Compare(current, previous models.FinancialData) Deltas {
	cm := Compute(current)
	pm := Compute(previous)
	return Deltas{
		Revenue:       PercentDelta(current.Revenue, previous.Revenue),
		TotalExpenses: PercentDelta(cm.TotalExpenses, pm.TotalExpenses),
		NetProfit:     PercentDelta(cm.NetProfit, pm.NetProfit),
		CashBalance:   PercentDelta(current.CashBalance, previous.CashBalance),
	}
}
