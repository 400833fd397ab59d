package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

var _ ledgerStore = &ledgerStoreMock{}

type ledgerStoreMock struct {
	ReplaceAllFunc func(ctx context.Context, entries []domain.LedgerEntry) (int64, error)

	calls struct {
		ReplaceAll []struct {
			Ctx     context.Context
			Entries []domain.LedgerEntry
		}
	}
	lockReplaceAll sync.RWMutex
}

func (mock *ledgerStoreMock) ReplaceAll(ctx context.Context, entries []domain.LedgerEntry) (int64, error) {
	if mock.ReplaceAllFunc == nil {
		panic("ledgerStoreMock.ReplaceAllFunc: method is nil but ledgerStore.ReplaceAll was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Entries []domain.LedgerEntry
	}{Ctx: ctx, Entries: entries}
	mock.lockReplaceAll.Lock()
	mock.calls.ReplaceAll = append(mock.calls.ReplaceAll, callInfo)
	mock.lockReplaceAll.Unlock()
	return mock.ReplaceAllFunc(ctx, entries)
}

func (mock *ledgerStoreMock) ReplaceAllCalls() []struct {
	Ctx     context.Context
	Entries []domain.LedgerEntry
} {
	mock.lockReplaceAll.RLock()
	calls := mock.calls.ReplaceAll
	mock.lockReplaceAll.RUnlock()
	return calls
}
