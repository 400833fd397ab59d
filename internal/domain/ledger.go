package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one financial movement imported from a CSV ledger.
//
// Dates are calendar dates stored as UTC midnight. Optional columns are nil
// when the source cell was blank. PersonID is nil for an orphan entry whose
// contact could not be resolved to a Person at import time.
type LedgerEntry struct {
	ID              int64
	Kind            string
	Status          string
	PlannedDate     time.Time
	ActualDate      *time.Time
	InvoiceDueDate  *time.Time
	PlannedAmount   decimal.Decimal
	ActualAmount    *decimal.Decimal
	Description     *string
	Category        *string
	Subcategory     *string
	Account         string
	TransferAccount *string
	CostCenter      *string
	Contact         string
	PaymentMethod   string
	Project         string
	DocumentNumber  *string
	Notes           *string
	AccrualDate     *time.Time
	UniqueID        string
	Tags            *string
	Card            *string
	Recurrence      string
	SavingsGoal     *decimal.Decimal
	CreatedOn       time.Time
	PersonID        *int64
}

// EffectiveDate returns the actual date when known, otherwise the planned date.
// Statements are ordered by this value.
func (e *LedgerEntry) EffectiveDate() time.Time {
	if e.ActualDate != nil {
		return *e.ActualDate
	}
	return e.PlannedDate
}

// IsOrphan reports whether the entry is not linked to any person.
func (e *LedgerEntry) IsOrphan() bool {
	return e.PersonID == nil
}

// Date returns the calendar date y-m-d as a UTC midnight time.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
