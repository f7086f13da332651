// ABOUTME: Financial dashboard CLI commands
// ABOUTME: Template/export/import spreadsheets, metrics, snapshots, and the CFO report
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/bizdesk/dashboard"
	"github.com/harperreed/bizdesk/db"
	"github.com/harperreed/bizdesk/models"
)

// DashboardTemplateCommand writes an empty spreadsheet template.
func DashboardTemplateCommand(args []string) error {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	out := fs.String("out", "financials-template.xlsx", "Output path for the template")
	_ = fs.Parse(args)

	if err := dashboard.WriteTemplate(*out); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Printf("Template written to %s\n", *out)
	return nil
}

// DashboardImportCommand parses a filled-in spreadsheet and records it as a
// snapshot.
func DashboardImportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	period := fs.String("period", "", "Reporting period, e.g. 2026-08 (default: current month)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: dashboard import <file.xlsx>")
	}

	data, err := dashboard.ParseWorkbook(fs.Arg(0))
	if err != nil {
		return err
	}

	snap := models.FinancialSnapshot{Period: *period, FinancialData: data}
	if err := db.CreateSnapshot(database, &snap); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	fmt.Printf("Recorded snapshot %s for period %s\n", snap.ID, snap.Period)
	printMetrics(dashboard.Compute(data), nil)
	return nil
}

// DashboardExportCommand writes the latest snapshot to a spreadsheet.
func DashboardExportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "financials.xlsx", "Output path for the workbook")
	_ = fs.Parse(args)

	current, _, err := db.LatestPair(database)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}
	if current == nil {
		return fmt.Errorf("no financial snapshots recorded yet")
	}

	if err := dashboard.ExportWorkbook(*out, current.FinancialData); err != nil {
		return fmt.Errorf("failed to export workbook: %w", err)
	}
	fmt.Printf("Exported snapshot for period %s to %s\n", current.Period, *out)
	return nil
}

// DashboardMetricsCommand prints the dashboard for the latest snapshot.
func DashboardMetricsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	_ = fs.Parse(args)

	current, previous, err := db.LatestPair(database)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}
	if current == nil {
		return fmt.Errorf("no financial snapshots recorded yet")
	}

	fmt.Printf("Period: %s\n\n", current.Period)

	var deltas *dashboard.Deltas
	if previous != nil {
		d := dashboard.Compare(current.FinancialData, previous.FinancialData)
		deltas = &d
	}
	printMetrics(dashboard.Compute(current.FinancialData), deltas)
	return nil
}

// DashboardSnapshotsCommand lists recorded snapshots.
func DashboardSnapshotsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("snapshots", flag.ExitOnError)
	limit := fs.Int("limit", 10, "Maximum number of snapshots to show")
	_ = fs.Parse(args)

	snaps, err := db.ListSnapshots(database, *limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPERIOD\tREVENUE\tNET PROFIT\tCASH\tRECORDED")
	_, _ = fmt.Fprintln(w, "--\t------\t-------\t----------\t----\t--------")
	for _, s := range snaps {
		m := dashboard.Compute(s.FinancialData)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
			s.ID, s.Period, s.Revenue, m.NetProfit, s.CashBalance,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
	return nil
}

// DashboardReportCommand generates the AI CFO report for the latest snapshot.
func DashboardReportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	model := fs.String("model", "", "Generation model (default gemini-2.5-flash)")
	_ = fs.Parse(args)

	current, _, err := db.LatestPair(database)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}
	if current == nil {
		return fmt.Errorf("no financial snapshots recorded yet")
	}

	ctx := context.Background()
	gen, err := dashboard.NewReportGenerator(ctx, os.Getenv("GEMINI_API_KEY"), *model)
	if err != nil {
		return err
	}

	report, err := gen.Generate(ctx, current.FinancialData)
	if err != nil {
		return err
	}

	fmt.Println(report)
	return nil
}

func printMetrics(m dashboard.Metrics, deltas *dashboard.Deltas) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Gross Profit\t%.2f\n", m.GrossProfit)
	_, _ = fmt.Fprintf(w, "Total Expenses\t%.2f\n", m.TotalExpenses)
	_, _ = fmt.Fprintf(w, "Net Profit\t%.2f\n", m.NetProfit)
	_, _ = fmt.Fprintf(w, "Gross Margin\t%.1f%%\n", m.GrossMargin)
	_, _ = fmt.Fprintf(w, "Net Margin\t%.1f%%\n", m.NetMargin)
	_, _ = fmt.Fprintf(w, "Working Capital\t%.2f\n", m.WorkingCapital)
	_, _ = fmt.Fprintf(w, "Debt Ratio\t%.2f\n", m.DebtRatio)
	_ = w.Flush()

	if deltas == nil {
		return
	}
	fmt.Println("\nvs previous period:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Revenue\t%+.1f%%\n", deltas.Revenue)
	_, _ = fmt.Fprintf(w, "Total Expenses\t%+.1f%%\n", deltas.TotalExpenses)
	_, _ = fmt.Fprintf(w, "Net Profit\t%+.1f%%\n", deltas.NetProfit)
	_, _ = fmt.Fprintf(w, "Cash Balance\t%+.1f%%\n", deltas.CashBalance)
	_ = w.Flush()
}
