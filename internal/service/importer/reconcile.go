package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/extrato-backend/internal/domain"
	"github.com/heartmarshall/extrato-backend/internal/slug"
)

// distinctContacts returns the non-blank contacts of entries in first-seen order.
func distinctContacts(entries []domain.LedgerEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	contacts := make([]string, 0)
	for i := range entries {
		c := strings.TrimSpace(entries[i].Contact)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		contacts = append(contacts, c)
	}
	return contacts
}

// indexByContact maps each stored contact to its person.
func indexByContact(people []domain.Person) map[string]domain.Person {
	m := make(map[string]domain.Person, len(people))
	for _, p := range people {
		m[p.Contact] = p
	}
	return m
}

// firstNameSlug derives the first-name slug for a new person.
func firstNameSlug(contact string) string {
	if s := slug.FirstName(contact); s != "" {
		return s
	}
	return fallbackFirstName
}

// reconcilePeople creates one person per contact that has no stored person
// yet and returns how many were created. Existing people are left untouched.
func (s *Service) reconcilePeople(ctx context.Context, contacts []string) (int, error) {
	people, err := s.people.ListAll(ctx)
	if err != nil {
		return 0, &domain.StoreError{Op: "list people", Err: err}
	}
	known := indexByContact(people)

	created := 0
	for _, contact := range contacts {
		if _, ok := known[contact]; ok {
			continue
		}

		p, err := s.createPerson(ctx, contact)
		if err != nil {
			return created, err
		}
		known[contact] = p
		created++

		s.log.DebugContext(ctx, "person created",
			slog.Int64("person_id", p.ID),
			slog.String("first_name", p.FirstNameSlug))
	}
	return created, nil
}

// createPerson inserts a person for contact, drawing a new token whenever the
// previous one turns out to be taken.
func (s *Service) createPerson(ctx context.Context, contact string) (domain.Person, error) {
	firstName := firstNameSlug(contact)

	for attempt := 1; attempt <= s.cfg.MaxTokenAttempts; attempt++ {
		token, err := s.tokens.Token()
		if err != nil {
			return domain.Person{}, fmt.Errorf("generate magic token: %w", err)
		}

		p, err := s.people.Create(ctx, domain.Person{
			Contact:       contact,
			FirstNameSlug: firstName,
			MagicToken:    token,
			Active:        true,
		})
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrTokenCollision) {
			return domain.Person{}, &domain.StoreError{Op: "create person", Err: err}
		}

		s.rec.ObserveTokenCollision()
		s.log.WarnContext(ctx, "magic token collision, retrying",
			slog.Int("attempt", attempt))
	}

	return domain.Person{}, &domain.StoreError{
		Op:  "create person",
		Err: fmt.Errorf("%w: gave up after %d attempts", domain.ErrTokenCollision, s.cfg.MaxTokenAttempts),
	}
}
