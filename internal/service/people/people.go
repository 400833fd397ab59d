package people

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// List returns the registered people ordered by contact. When activeOnly is
// set, deactivated people are left out.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Person, error) {
	people, err := s.people.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("people.List: %w", err)
	}
	return people, nil
}

// UpdatePhones applies the given phones per contact in one transaction and
// returns how many people actually changed. Blank and unknown contacts are
// skipped.
func (s *Service) UpdatePhones(ctx context.Context, updates []PhoneUpdate) (int, error) {
	if err := validatePhoneUpdates(updates); err != nil {
		return 0, err
	}

	updated := 0
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		updated = 0
		for _, u := range updates {
			contact := strings.TrimSpace(u.Contact)
			if contact == "" {
				continue
			}

			changed, err := s.people.UpdatePhones(ctx, contact, u.phones())
			if err != nil {
				return fmt.Errorf("update phones: %w", err)
			}
			if changed {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("people.UpdatePhones: %w", err)
	}

	s.log.InfoContext(ctx, "phones updated",
		slog.Int("requested", len(updates)),
		slog.Int("updated", updated))

	return updated, nil
}

// SetActive marks the person active or inactive.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	if err := s.people.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("people.SetActive: %w", err)
	}

	s.log.InfoContext(ctx, "person activation changed",
		slog.Int64("person_id", id),
		slog.Bool("active", active))

	return nil
}
