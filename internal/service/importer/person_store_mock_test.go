package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

var _ personStore = &personStoreMock{}

type personStoreMock struct {
	ListAllFunc func(ctx context.Context) ([]domain.Person, error)
	CreateFunc  func(ctx context.Context, p domain.Person) (domain.Person, error)

	calls struct {
		ListAll []struct {
			Ctx context.Context
		}
		Create []struct {
			Ctx context.Context
			P   domain.Person
		}
	}
	lockListAll sync.RWMutex
	lockCreate  sync.RWMutex
}

func (mock *personStoreMock) ListAll(ctx context.Context) ([]domain.Person, error) {
	if mock.ListAllFunc == nil {
		panic("personStoreMock.ListAllFunc: method is nil but personStore.ListAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *personStoreMock) ListAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *personStoreMock) Create(ctx context.Context, p domain.Person) (domain.Person, error) {
	if mock.CreateFunc == nil {
		panic("personStoreMock.CreateFunc: method is nil but personStore.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Person
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *personStoreMock) CreateCalls() []struct {
	Ctx context.Context
	P   domain.Person
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
