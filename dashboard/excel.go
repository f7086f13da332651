// ABOUTME: Spreadsheet template import and export for financial data
// ABOUTME: Fixed label-to-field layout with tolerant parsing rules
package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harperreed/bizdesk/models"
)

const templateSheet = "Financials"

// templateRow binds a spreadsheet label to one FinancialData field. The
// order here is the fixed template layout.
type templateRow struct {
	label string
	field func(*models.FinancialData) *float64
}

var templateRows = []templateRow{
	{"Revenue", func(d *models.FinancialData) *float64 { return &d.Revenue }},
	{"Cost of Goods Sold", func(d *models.FinancialData) *float64 { return &d.COGS }},
	{"Payroll", func(d *models.FinancialData) *float64 { return &d.Payroll }},
	{"Marketing", func(d *models.FinancialData) *float64 { return &d.Marketing }},
	{"Rent", func(d *models.FinancialData) *float64 { return &d.Rent }},
	{"Utilities", func(d *models.FinancialData) *float64 { return &d.Utilities }},
	{"Other Expenses", func(d *models.FinancialData) *float64 { return &d.OtherExpenses }},
	{"Cash Balance", func(d *models.FinancialData) *float64 { return &d.CashBalance }},
	{"Accounts Receivable", func(d *models.FinancialData) *float64 { return &d.AccountsReceivable }},
	{"Accounts Payable", func(d *models.FinancialData) *float64 { return &d.AccountsPayable }},
	{"Loans", func(d *models.FinancialData) *float64 { return &d.Loans }},
}

// WriteTemplate writes an empty template workbook to path.
func WriteTemplate(path string) error {
	return writeWorkbook(path, models.FinancialData{})
}

// ExportWorkbook writes d into the fixed template layout at path.
func ExportWorkbook(path string, d models.FinancialData) error {
	return writeWorkbook(path, d)
}

func writeWorkbook(path string, d models.FinancialData) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(templateSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SetCellValue(templateSheet, "A1", "Metric"); err != nil {
		return err
	}
	if err := f.SetCellValue(templateSheet, "B1", "Amount"); err != nil {
		return err
	}

	for i, row := range templateRows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(templateSheet, cellA, row.label); err != nil {
			return err
		}
		if err := f.SetCellValue(templateSheet, cellB, *row.field(&d)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ParseWorkbook reads financial figures out of a filled template. Unknown
// labels are ignored, missing labels default to zero, and a non-numeric
// value in a known row is rejected.
func ParseWorkbook(path string) (models.FinancialData, error) {
	var d models.FinancialData

	f, err := excelize.OpenFile(path)
	if err != nil {
		return d, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(templateSheet)
	if err != nil {
		return d, fmt.Errorf("workbook has no %q sheet, check the template format", templateSheet)
	}

	fields := make(map[string]func(*models.FinancialData) *float64, len(templateRows))
	for _, row := range templateRows {
		fields[row.label] = row.field
	}

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		field, known := fields[strings.TrimSpace(row[0])]
		if !known {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return models.FinancialData{}, fmt.Errorf("non-numeric value %q for %q, check the template format", row[1], row[0])
		}
		*field(&d) = value
	}

	return d, nil
}
