// ABOUTME: Data models for business-management entities
// ABOUTME: Defines Client, Lead, and FinancialData structs with their enums
package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Company     string      `json:"company,omitempty"`
	Status      string      `json:"status"`
	Type        string      `json:"type"`
	LastContact *time.Time  `json:"last_contact,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	DealIDs     []uuid.UUID `json:"deal_ids,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Lead struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	ClientName  string     `json:"client_name"` // denormalized display name
	ClientID    uuid.UUID  `json:"client_id,omitempty"`
	Value       int64      `json:"value,omitempty"` // in cents
	Stage       string     `json:"stage"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Probability int        `json:"probability,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Client status constants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Client type constants. A prospect is promoted to a client automatically
// when one of its leads reaches StageWon.
const (
	TypeProspect = "prospect"
	TypeClient   = "client"
	TypePartner  = "partner"
)

// Pipeline stage constants. The set is fixed but transitions are free-form:
// a lead may move from any stage to any other stage.
const (
	StageWarmLead  = "warm-lead"
	StageQualified = "qualified"
	StageDiscovery = "discovery"
	StageProposal  = "proposal"
	StageFollowUp  = "follow-up"
	StageContract  = "contract"
	StageLost      = "lost"
	StageWon       = "won"
)

// Stages returns all pipeline stages in display order.
func Stages() []string {
	return []string{
		StageWarmLead,
		StageQualified,
		StageDiscovery,
		StageProposal,
		StageFollowUp,
		StageContract,
		StageLost,
		StageWon,
	}
}

// ValidStage reports whether stage is one of the fixed pipeline stages.
func ValidStage(stage string) bool {
	switch stage {
	case StageWarmLead, StageQualified, StageDiscovery, StageProposal,
		StageFollowUp, StageContract, StageLost, StageWon:
		return true
	}
	return false
}

// FinancialData holds the form-entered numeric fields behind the CEO
// dashboard. All values are plain currency amounts.
type FinancialData struct {
	Revenue            float64 `json:"revenue"`
	COGS               float64 `json:"cogs"`
	Payroll            float64 `json:"payroll"`
	Marketing          float64 `json:"marketing"`
	Rent               float64 `json:"rent"`
	Utilities          float64 `json:"utilities"`
	OtherExpenses      float64 `json:"other_expenses"`
	CashBalance        float64 `json:"cash_balance"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	AccountsPayable    float64 `json:"accounts_payable"`
	Loans              float64 `json:"loans"`
}

// FinancialSnapshot is one dated set of financial figures. Snapshots are the
// only dashboard state with history; the latest two drive period-over-period
// deltas.
type FinancialSnapshot struct {
	ID     uuid.UUID `json:"id"`
	Period string    `json:"period"` // e.g. "2026-08"
	FinancialData
	CreatedAt time.Time `json:"created_at"`
}
