// Package people implements the administrator's view of the person registry.
package people

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// personRepo defines the person repository interface needed by the people service.
type personRepo interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Person, error)
	UpdatePhones(ctx context.Context, contact string, phones domain.Phones) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// txManager defines the transaction manager interface needed by the people service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements people administration.
type Service struct {
	log    *slog.Logger
	people personRepo
	tx     txManager
}

// NewService creates a new people service.
func NewService(logger *slog.Logger, people personRepo, tx txManager) *Service {
	return &Service{
		log:    logger.With("service", "people"),
		people: people,
		tx:     tx,
	}
}
