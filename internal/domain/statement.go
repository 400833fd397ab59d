package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the read-only view of a person's ledger served to slug holders.
type Statement struct {
	PersonName     string
	Lines          []StatementLine
	LastUpdated    *time.Time
	AvailableYears []int
	SelectedYear   *int
}

// StatementLine is the public projection of a LedgerEntry.
type StatementLine struct {
	PersonName    string
	PlannedDate   time.Time
	ActualDate    *time.Time
	Description   *string
	ActualAmount  *decimal.Decimal
	PlannedAmount decimal.Decimal
	Kind          string
	Status        string
	Project       string
	Category      *string
}

// NewStatementLine projects a ledger entry for the given person name.
func NewStatementLine(personName string, e LedgerEntry) StatementLine {
	return StatementLine{
		PersonName:    personName,
		PlannedDate:   e.PlannedDate,
		ActualDate:    e.ActualDate,
		Description:   e.Description,
		ActualAmount:  e.ActualAmount,
		PlannedAmount: e.PlannedAmount,
		Kind:          e.Kind,
		Status:        e.Status,
		Project:       e.Project,
		Category:      e.Category,
	}
}
