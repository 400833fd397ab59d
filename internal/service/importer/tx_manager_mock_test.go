package importer

import (
	"context"
	"sync"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc  func(ctx context.Context, fn func(ctx context.Context) error) error
	LockXactFunc func(ctx context.Context, key int64) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
		LockXact []struct {
			Ctx context.Context
			Key int64
		}
	}
	lockRunInTx  sync.RWMutex
	lockLockXact sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *txManagerMock) LockXact(ctx context.Context, key int64) error {
	if mock.LockXactFunc == nil {
		panic("txManagerMock.LockXactFunc: method is nil but txManager.LockXact was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key int64
	}{Ctx: ctx, Key: key}
	mock.lockLockXact.Lock()
	mock.calls.LockXact = append(mock.calls.LockXact, callInfo)
	mock.lockLockXact.Unlock()
	return mock.LockXactFunc(ctx, key)
}

func (mock *txManagerMock) LockXactCalls() []struct {
	Ctx context.Context
	Key int64
} {
	mock.lockLockXact.RLock()
	calls := mock.calls.LockXact
	mock.lockLockXact.RUnlock()
	return calls
}
