// ABOUTME: Financial snapshot database operations
// ABOUTME: Handles snapshot history behind period-over-period deltas
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizdesk/models"
)

func CreateSnapshot(db *sql.DB, snap *models.FinancialSnapshot) error {
	snap.ID = uuid.New()
	snap.CreatedAt = time.Now()
	if snap.Period == "" {
		snap.Period = snap.CreatedAt.Format("2006-01")
	}

	_, err := db.Exec(`
		INSERT INTO financial_snapshots (id, period, revenue, cogs, payroll, marketing, rent, utilities, other_expenses, cash_balance, accounts_receivable, accounts_payable, loans, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID.String(), snap.Period, snap.Revenue, snap.COGS, snap.Payroll, snap.Marketing, snap.Rent, snap.Utilities, snap.OtherExpenses, snap.CashBalance, snap.AccountsReceivable, snap.AccountsPayable, snap.Loans, snap.CreatedAt)

	return err
}

func GetSnapshot(db *sql.DB, id uuid.UUID) (*models.FinancialSnapshot, error) {
	row := db.QueryRow(`
		SELECT id, period, revenue, cogs, payroll, marketing, rent, utilities, other_expenses, cash_balance, accounts_receivable, accounts_payable, loans, created_at
		FROM financial_snapshots WHERE id = ?
	`, id.String())

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListSnapshots returns snapshots newest first.
func ListSnapshots(db *sql.DB, limit int) ([]models.FinancialSnapshot, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(`
		SELECT id, period, revenue, cogs, payroll, marketing, rent, utilities, other_expenses, cash_balance, accounts_receivable, accounts_payable, loans, created_at
		FROM financial_snapshots
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.FinancialSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}

	return snaps, rows.Err()
}

// LatestPair returns the newest snapshot and its predecessor. Either may be
// nil when the history is short.
func LatestPair(db *sql.DB) (current, previous *models.FinancialSnapshot, err error) {
	snaps, err := ListSnapshots(db, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(snaps) > 0 {
		current = &snaps[0]
	}
	if len(snaps) > 1 {
		previous = &snaps[1]
	}
	return current, previous, nil
}

func DeleteSnapshot(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM financial_snapshots WHERE id = ?`, id.String())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*models.FinancialSnapshot, error) {
	snap := &models.FinancialSnapshot{}
	err := row.Scan(
		&snap.ID,
		&snap.Period,
		&snap.Revenue,
		&snap.COGS,
		&snap.Payroll,
		&snap.Marketing,
		&snap.Rent,
		&snap.Utilities,
		&snap.OtherExpenses,
		&snap.CashBalance,
		&snap.AccountsReceivable,
		&snap.AccountsPayable,
		&snap.Loans,
		&snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return snap, nil
}
