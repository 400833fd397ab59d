package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// linkEntries returns copies of entries with PersonID set from the person
// sharing their trimmed contact, plus the number of entries left unlinked.
func linkEntries(entries []domain.LedgerEntry, byContact map[string]domain.Person) ([]domain.LedgerEntry, map[string]int) {
	linked := make([]domain.LedgerEntry, len(entries))
	orphans := make(map[string]int)

	for i := range entries {
		e := entries[i]
		contact := strings.TrimSpace(e.Contact)
		if p, ok := byContact[contact]; ok {
			id := p.ID
			e.PersonID = &id
		} else {
			e.PersonID = nil
			orphans[contact]++
		}
		linked[i] = e
	}
	return linked, orphans
}

// replaceLedger re-reads all people, links every entry to its person and
// swaps the stored ledger for entries. It must run after reconcilePeople in
// the same transaction.
func (s *Service) replaceLedger(ctx context.Context, entries []domain.LedgerEntry) (imported, orphaned int, err error) {
	people, err := s.people.ListAll(ctx)
	if err != nil {
		return 0, 0, &domain.StoreError{Op: "list people", Err: err}
	}

	linked, orphans := linkEntries(entries, indexByContact(people))
	for contact, n := range orphans {
		s.log.WarnContext(ctx, "ledger entries without a person",
			slog.String("contact", contact),
			slog.Int("entries", n))
		orphaned += n
	}

	written, err := s.ledger.ReplaceAll(ctx, linked)
	if err != nil {
		return 0, 0, &domain.StoreError{Op: "replace ledger", Err: err}
	}
	return int(written), orphaned, nil
}
