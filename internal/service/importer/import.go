package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/extrato-backend/internal/domain"
	"github.com/heartmarshall/extrato-backend/internal/ledgercsv"
	"github.com/heartmarshall/extrato-backend/internal/metrics"
)

// Import parses a ledger CSV from r and replaces the stored ledger with it in
// a single transaction. Parsing completes before anything is written; any
// row error is returned as *domain.RowError and leaves the store untouched.
// Persistence failures are returned as *domain.StoreError after rollback.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()
	entries, err := ledgercsv.Parse(r)
	if err != nil {
		s.rec.ObserveImport(metrics.OutcomeRejected, 0, 0, 0, time.Since(start))
		s.log.InfoContext(ctx, "ledger import rejected", slog.String("error", err.Error()))
		return nil, err
	}
	return s.importEntries(ctx, entries, start)
}

// ImportEntries replaces the stored ledger with already mapped entries.
func (s *Service) ImportEntries(ctx context.Context, entries []domain.LedgerEntry) (*Result, error) {
	return s.importEntries(ctx, entries, time.Now())
}

func (s *Service) importEntries(ctx context.Context, entries []domain.LedgerEntry, start time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts := distinctContacts(entries)

	var res Result
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tx.LockXact(ctx, ledgerLockKey); err != nil {
			return &domain.StoreError{Op: "lock ledger", Err: err}
		}

		created, err := s.reconcilePeople(ctx, contacts)
		if err != nil {
			return err
		}

		imported, orphaned, err := s.replaceLedger(ctx, entries)
		if err != nil {
			return err
		}

		res = Result{
			NewPeopleCount:     created,
			ImportedEntryCount: imported,
			OrphanedEntryCount: orphaned,
		}
		return nil
	})
	if err != nil {
		var storeErr *domain.StoreError
		if !errors.As(err, &storeErr) {
			err = &domain.StoreError{Op: "import transaction", Err: err}
		}
		s.rec.ObserveImport(metrics.OutcomeFailed, 0, 0, 0, time.Since(start))
		s.log.ErrorContext(ctx, "ledger import failed", slog.String("error", err.Error()))
		return nil, err
	}

	s.rec.ObserveImport(metrics.OutcomeOK,
		res.NewPeopleCount, res.ImportedEntryCount, res.OrphanedEntryCount, time.Since(start))

	s.log.InfoContext(ctx, "ledger imported",
		slog.Int("new_people", res.NewPeopleCount),
		slog.Int("entries", res.ImportedEntryCount),
		slog.Int("orphaned", res.OrphanedEntryCount),
		slog.Duration("took", time.Since(start)))

	return &res, nil
}

// Preview parses a ledger CSV and reports what Import would do without
// opening a transaction.
func (s *Service) Preview(ctx context.Context, r io.Reader) (*Preview, error) {
	entries, err := ledgercsv.Parse(r)
	if err != nil {
		return nil, err
	}

	people, err := s.people.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("importer.Preview list people: %w", err)
	}
	known := indexByContact(people)

	contacts := distinctContacts(entries)
	p := &Preview{EntryCount: len(entries), ContactCount: len(contacts)}
	for _, c := range contacts {
		if _, ok := known[c]; !ok {
			p.NewPeopleCount++
		}
	}
	return p, nil
}
