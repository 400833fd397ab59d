// Package statement serves the read-only ledger view behind a public slug.
package statement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/extrato-backend/internal/domain"
	"github.com/heartmarshall/extrato-backend/internal/slug"
)

// personRepo defines the person lookup needed by the statement service.
type personRepo interface {
	GetBySlug(ctx context.Context, firstNameSlug, token string) (domain.Person, error)
}

// ledgerRepo defines the ledger reads needed by the statement service.
type ledgerRepo interface {
	ListByPerson(ctx context.Context, personID int64, year *int) ([]domain.LedgerEntry, error)
	YearsByPerson(ctx context.Context, personID int64) ([]int, error)
	LastCreatedOn(ctx context.Context) (*time.Time, error)
}

// Service implements the public statement.
type Service struct {
	log    *slog.Logger
	people personRepo
	ledger ledgerRepo
}

// NewService creates a new statement service.
func NewService(logger *slog.Logger, people personRepo, ledger ledgerRepo) *Service {
	return &Service{
		log:    logger.With("service", "statement"),
		people: people,
		ledger: ledger,
	}
}

// GetStatement returns the ledger of the person identified by slug, optionally
// restricted to entries planned within year. A malformed or unknown slug
// yields domain.ErrNotFound.
func (s *Service) GetStatement(ctx context.Context, publicSlug string, year *int) (*domain.Statement, error) {
	firstName, token, ok := slug.Parse(publicSlug)
	if !ok {
		return nil, domain.ErrNotFound
	}

	person, err := s.people.GetBySlug(ctx, firstName, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("statement.GetStatement get person: %w", err)
	}

	var (
		entries     []domain.LedgerEntry
		years       []int
		lastUpdated *time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.ledger.ListByPerson(gctx, person.ID, year)
		return err
	})
	g.Go(func() error {
		var err error
		years, err = s.ledger.YearsByPerson(gctx, person.ID)
		return err
	})
	g.Go(func() error {
		var err error
		lastUpdated, err = s.ledger.LastCreatedOn(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("statement.GetStatement read ledger: %w", err)
	}

	lines := make([]domain.StatementLine, len(entries))
	for i := range entries {
		lines[i] = domain.NewStatementLine(person.Contact, entries[i])
	}
	if years == nil {
		years = []int{}
	}

	s.log.DebugContext(ctx, "statement served",
		slog.Int64("person_id", person.ID),
		slog.Int("lines", len(lines)))

	return &domain.Statement{
		PersonName:     person.Contact,
		Lines:          lines,
		LastUpdated:    lastUpdated,
		AvailableYears: years,
		SelectedYear:   year,
	}, nil
}
