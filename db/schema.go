// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation for financial snapshot history
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS financial_snapshots (
	id TEXT PRIMARY KEY,
	period TEXT NOT NULL,
	revenue REAL NOT NULL DEFAULT 0,
	cogs REAL NOT NULL DEFAULT 0,
	payroll REAL NOT NULL DEFAULT 0,
	marketing REAL NOT NULL DEFAULT 0,
	rent REAL NOT NULL DEFAULT 0,
	utilities REAL NOT NULL DEFAULT 0,
	other_expenses REAL NOT NULL DEFAULT 0,
	cash_balance REAL NOT NULL DEFAULT 0,
	accounts_receivable REAL NOT NULL DEFAULT 0,
	accounts_payable REAL NOT NULL DEFAULT 0,
	loans REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_financial_snapshots_created ON financial_snapshots(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_financial_snapshots_period ON financial_snapshots(period);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
