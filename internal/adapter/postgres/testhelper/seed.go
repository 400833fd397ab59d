package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/extrato-backend/internal/adapter/postgres"
	"github.com/heartmarshall/extrato-backend/internal/domain"
	"github.com/heartmarshall/extrato-backend/internal/slug"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueContact returns a contact name that no other test uses.
func UniqueContact(first string) string {
	return first + " Teste " + uniqueSuffix()
}

// SeedPerson inserts an active person for contact with a fresh random token
// and returns it as stored.
func SeedPerson(t *testing.T, pool *pgxpool.Pool, contact string) domain.Person {
	t.Helper()
	ctx := context.Background()

	token, err := slug.NewGenerator(nil).Token()
	if err != nil {
		t.Fatalf("testhelper: SeedPerson token: %v", err)
	}

	p := domain.Person{
		Contact:       contact,
		FirstNameSlug: slug.FirstName(contact),
		MagicToken:    token,
		Active:        true,
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO people (contact, first_name_slug, magic_token, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.Contact, p.FirstNameSlug, p.MagicToken, p.Active,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedPerson insert: %v", err)
	}

	return p
}

// NewEntry returns a ledger entry with every required field filled in.
func NewEntry(contact string, planned time.Time, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{
		Kind:          "Receita",
		Status:        "Pago",
		PlannedDate:   planned,
		PlannedAmount: decimal.RequireFromString(amount),
		Account:       "Banco",
		Contact:       contact,
		PaymentMethod: "Pix",
		Project:       "Geral",
		UniqueID:      uniqueSuffix(),
		Recurrence:    "Única",
		CreatedOn:     planned,
	}
}

// SeedEntry appends one ledger entry without touching existing rows and
// returns its id.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, e domain.LedgerEntry) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO ledger_entries (kind, status, planned_date, actual_date, planned_amount,
		     actual_amount, description, category, account, contact, payment_method,
		     project, unique_id, recurrence, created_on, person_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id`,
		e.Kind, e.Status, e.PlannedDate, e.ActualDate, postgres.Numeric(e.PlannedAmount),
		postgres.NullNumeric(e.ActualAmount), e.Description, e.Category, e.Account, e.Contact,
		e.PaymentMethod, e.Project, e.UniqueID, e.Recurrence, e.CreatedOn, e.PersonID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert: %v", err)
	}

	return id
}
