// ABOUTME: Tests for spreadsheet template parsing and export
// ABOUTME: Covers round-trips, unknown labels, and malformed values
package dashboard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harperreed/bizdesk/models"
)

func TestTemplateParsesToZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path))

	d, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, models.FinancialData{}, d)
}

func TestExportParseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := models.FinancialData{
		Revenue:            150000.50,
		COGS:               60000,
		Payroll:            35000,
		Marketing:          4000,
		Rent:               6000,
		Utilities:          900,
		OtherExpenses:      1100,
		CashBalance:        42000,
		AccountsReceivable: 17000,
		AccountsPayable:    8000,
		Loans:              20000,
	}

	exported := filepath.Join(dir, "export.xlsx")
	require.NoError(t, ExportWorkbook(exported, want))

	parsed, err := ParseWorkbook(exported)
	require.NoError(t, err)
	assert.Equal(t, want, parsed)

	// Export the parsed data again: the two workbooks must agree.
	again := filepath.Join(dir, "again.xlsx")
	require.NoError(t, ExportWorkbook(again, parsed))
	reparsed, err := ParseWorkbook(again)
	require.NoError(t, err)
	assert.Equal(t, parsed, reparsed)
}

func TestParseIgnoresUnknownLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.xlsx")
	require.NoError(t, WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Financials", "A20", "EBITDA Adjustments"))
	require.NoError(t, f.SetCellValue("Financials", "B20", "not even a number"))
	require.NoError(t, f.SetCellValue("Financials", "B2", 12345.0)) // Revenue
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	d, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, 12345.0, d.Revenue)
}

func TestParseRejectsNonNumericValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Financials", "B2", "lots"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	_, err = ParseWorkbook(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check the template format")
}

func TestParseMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ParseWorkbook(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check the template format")
}
