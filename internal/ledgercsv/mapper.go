package ledgercsv

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// MapRow converts a row into a LedgerEntry. Errors are *domain.RowError
// carrying the row line and the offending column.
//
// Required columns must be non-blank. Optional blank columns map to nil.
// Dates are ISO (2006-01-02) or day-first (02/01/2006). Amounts use "." as
// thousands separator and "," as decimal separator.
func MapRow(row Row) (domain.LedgerEntry, error) {
	m := rowMapper{row: row}

	e := domain.LedgerEntry{
		Kind:            m.required(ColKind),
		Status:          m.required(ColStatus),
		PlannedDate:     m.requiredDate(ColPlannedDate),
		ActualDate:      m.optionalDate(ColActualDate),
		InvoiceDueDate:  m.optionalDate(ColInvoiceDueDate),
		PlannedAmount:   m.requiredAmount(ColPlannedAmount),
		ActualAmount:    m.optionalAmount(ColActualAmount),
		Description:     m.optional(ColDescription),
		Category:        m.optional(ColCategory),
		Subcategory:     m.optional(ColSubcategory),
		Account:         m.required(ColAccount),
		TransferAccount: m.optional(ColTransferAccount),
		CostCenter:      m.optional(ColCostCenter),
		Contact:         m.required(ColContact),
		PaymentMethod:   m.required(ColPaymentMethod),
		Project:         m.required(ColProject),
		DocumentNumber:  m.optional(ColDocumentNumber),
		Notes:           m.optional(ColNotes),
		AccrualDate:     m.optionalDate(ColAccrualDate),
		UniqueID:        m.required(ColUniqueID),
		Tags:            m.optional(ColTags),
		Card:            m.optional(ColCard),
		Recurrence:      m.required(ColRecurrence),
		SavingsGoal:     m.optionalAmount(ColSavingsGoal),
		CreatedOn:       m.requiredDate(ColCreatedOn),
	}
	if m.err != nil {
		return domain.LedgerEntry{}, m.err
	}
	return e, nil
}

// ParseDate parses a ledger date cell.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.InvalidDateError{Raw: raw}
}

// ParseAmount parses a ledger amount cell such as "1.234,56".
func ParseAmount(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, &domain.InvalidAmountError{Raw: raw}
	}
	return d, nil
}

// rowMapper reads columns from a row and keeps the first error it meets.
// Once err is set every accessor returns a zero value.
type rowMapper struct {
	row Row
	err error
}

func (m *rowMapper) fail(column, raw string, err error) {
	m.err = &domain.RowError{Line: m.row.Line, Column: column, Raw: raw, Err: err}
}

func (m *rowMapper) required(column string) string {
	if m.err != nil {
		return ""
	}
	v := m.row.Value(column)
	if v == "" {
		m.fail(column, "", &domain.MissingFieldError{Column: column})
	}
	return v
}

func (m *rowMapper) optional(column string) *string {
	if m.err != nil {
		return nil
	}
	v := m.row.Value(column)
	if v == "" {
		return nil
	}
	return &v
}

func (m *rowMapper) requiredDate(column string) time.Time {
	raw := m.required(column)
	if m.err != nil {
		return time.Time{}
	}
	t, err := ParseDate(raw)
	if err != nil {
		m.fail(column, raw, err)
	}
	return t
}

func (m *rowMapper) optionalDate(column string) *time.Time {
	raw := m.optional(column)
	if raw == nil {
		return nil
	}
	t, err := ParseDate(*raw)
	if err != nil {
		m.fail(column, *raw, err)
		return nil
	}
	return &t
}

func (m *rowMapper) requiredAmount(column string) decimal.Decimal {
	raw := m.required(column)
	if m.err != nil {
		return decimal.Decimal{}
	}
	d, err := ParseAmount(raw)
	if err != nil {
		m.fail(column, raw, err)
	}
	return d
}

func (m *rowMapper) optionalAmount(column string) *decimal.Decimal {
	raw := m.optional(column)
	if raw == nil {
		return nil
	}
	d, err := ParseAmount(*raw)
	if err != nil {
		m.fail(column, *raw, err)
		return nil
	}
	return &d
}
