// Package ledger implements the ledger entry repository using PostgreSQL.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/extrato-backend/internal/adapter/postgres"
	"github.com/heartmarshall/extrato-backend/internal/domain"
)

const table = "ledger_entries"


// dataColumns are the columns written on import, in CopyFrom order.
var dataColumns = []string{
	"kind", "status", "planned_date", "actual_date", "invoice_due_date",
	"planned_amount", "actual_amount", "description", "category", "subcategory",
	"account", "transfer_account", "cost_center", "contact", "payment_method",
	"project", "document_number", "notes", "accrual_date", "unique_id",
	"tags", "card", "recurrence", "savings_goal", "created_on", "person_id",
}

var selectColumns = append([]string{"id"}, dataColumns...)

// orderEffectiveDate sorts entries by their actual date, falling back to the
// planned date, with id as tie-breaker for a stable order.
const orderEffectiveDate = "COALESCE(actual_date, planned_date), id"

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ReplaceAll empties the ledger, restarts its id sequence and bulk loads
// entries. It must run inside a transaction so readers never observe the
// empty ledger. Returns the number of rows written.
func (r *Repo) ReplaceAll(ctx context.Context, entries []domain.LedgerEntry) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY"); err != nil {
		return 0, fmt.Errorf("truncate ledger: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	n, err := q.CopyFrom(ctx, pgx.Identifier{table}, dataColumns, pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
		return entryValues(&entries[i]), nil
	}))
	if err != nil {
		return 0, postgres.MapError(err, "ledger_entry", "copy")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByPerson returns the person's entries ordered by effective date. When
// year is set only entries planned within that calendar year are returned.
func (r *Repo) ListByPerson(ctx context.Context, personID int64, year *int) ([]domain.LedgerEntry, error) {
	q := postgres.Builder().Select(selectColumns...).From(table).
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy(orderEffectiveDate)

	if year != nil {
		from := domain.Date(*year, time.January, 1)
		q = q.Where(squirrel.GtOrEq{"planned_date": from}).
			Where(squirrel.Lt{"planned_date": from.AddDate(1, 0, 0)})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ledger select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries for person %d: %w", personID, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger entries for person %d: %w", personID, err)
	}
	return entries, nil
}

// YearsByPerson returns the distinct planned-date years of the person's
// entries in ascending order.
func (r *Repo) YearsByPerson(ctx context.Context, personID int64) ([]int, error) {
	sql, args, err := postgres.Builder().
		Select("DISTINCT EXTRACT(YEAR FROM planned_date)::int AS year").
		From(table).
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy("year").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build years select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list years for person %d: %w", personID, err)
	}

	years, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("list years for person %d: %w", personID, err)
	}
	return years, nil
}

// LastCreatedOn returns the most recent creation date across the whole
// ledger, or nil when the ledger is empty.
func (r *Repo) LastCreatedOn(ctx context.Context) (*time.Time, error) {
	var last pgtype.Date
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, "SELECT MAX(created_on) FROM "+table).
		Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("last ledger creation date: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	t := last.Time
	return &t, nil
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, "SELECT count(*) FROM "+table).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func entryValues(e *domain.LedgerEntry) []any {
	return []any{
		e.Kind, e.Status, e.PlannedDate, e.ActualDate, e.InvoiceDueDate,
		postgres.Numeric(e.PlannedAmount), postgres.NullNumeric(e.ActualAmount),
		e.Description, e.Category, e.Subcategory,
		e.Account, e.TransferAccount, e.CostCenter, e.Contact, e.PaymentMethod,
		e.Project, e.DocumentNumber, e.Notes, e.AccrualDate, e.UniqueID,
		e.Tags, e.Card, e.Recurrence, postgres.NullNumeric(e.SavingsGoal),
		e.CreatedOn, e.PersonID,
	}
}

func scanEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var (
		e                        domain.LedgerEntry
		planned, actual, savings pgtype.Numeric
	)
	err := row.Scan(
		&e.ID,
		&e.Kind, &e.Status, &e.PlannedDate, &e.ActualDate, &e.InvoiceDueDate,
		&planned, &actual,
		&e.Description, &e.Category, &e.Subcategory,
		&e.Account, &e.TransferAccount, &e.CostCenter, &e.Contact, &e.PaymentMethod,
		&e.Project, &e.DocumentNumber, &e.Notes, &e.AccrualDate, &e.UniqueID,
		&e.Tags, &e.Card, &e.Recurrence, &savings,
		&e.CreatedOn, &e.PersonID,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	e.PlannedAmount = postgres.Decimal(planned)
	e.ActualAmount = postgres.NullDecimal(actual)
	e.SavingsGoal = postgres.NullDecimal(savings)
	return e, nil
}
