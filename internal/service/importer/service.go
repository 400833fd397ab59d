// Package importer replaces the stored ledger with the contents of a CSV
// export, creating a person for every contact seen for the first time.
package importer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/extrato-backend/internal/config"
	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// ledgerLockKey is the PostgreSQL advisory lock key held for the duration of
// an import transaction.
const ledgerLockKey int64 = 0x6c65646765720001

// fallbackFirstName is the slug used when a contact yields no usable
// first-name characters.
const fallbackFirstName = "contato"

// personStore defines the person persistence needed by the importer.
type personStore interface {
	ListAll(ctx context.Context) ([]domain.Person, error)
	Create(ctx context.Context, p domain.Person) (domain.Person, error)
}

// ledgerStore defines the ledger persistence needed by the importer.
type ledgerStore interface {
	ReplaceAll(ctx context.Context, entries []domain.LedgerEntry) (int64, error)
}

// txManager defines the transaction manager interface needed by the importer.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockXact(ctx context.Context, key int64) error
}

// tokenSource produces fresh magic tokens.
type tokenSource interface {
	Token() (string, error)
}

// recorder receives import outcomes for metrics.
type recorder interface {
	ObserveImport(outcome string, newPeople, entries, orphaned int, d time.Duration)
	ObserveTokenCollision()
}

type noopRecorder struct{}

func (noopRecorder) ObserveImport(string, int, int, int, time.Duration) {}
func (noopRecorder) ObserveTokenCollision()                             {}

// Service implements the CSV import.
type Service struct {
	log    *slog.Logger
	people personStore
	ledger ledgerStore
	tx     txManager
	tokens tokenSource
	rec    recorder
	cfg    config.ImportConfig

	// mu queues concurrent imports within this process; the advisory lock
	// covers other processes.
	mu sync.Mutex
}

// NewService creates a new import service. rec may be nil.
func NewService(
	logger *slog.Logger,
	people personStore,
	ledger ledgerStore,
	tx txManager,
	tokens tokenSource,
	rec recorder,
	cfg config.ImportConfig,
) *Service {
	if cfg.MaxTokenAttempts <= 0 {
		cfg.MaxTokenAttempts = 5
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Service{
		log:    logger.With("service", "importer"),
		people: people,
		ledger: ledger,
		tx:     tx,
		tokens: tokens,
		rec:    rec,
		cfg:    cfg,
	}
}
