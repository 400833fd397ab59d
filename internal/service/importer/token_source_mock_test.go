package importer

import (
	"sync"
)

var _ tokenSource = &tokenSourceMock{}

type tokenSourceMock struct {
	TokenFunc func() (string, error)

	calls struct {
		Token []struct{}
	}
	lockToken sync.RWMutex
}

func (mock *tokenSourceMock) Token() (string, error) {
	if mock.TokenFunc == nil {
		panic("tokenSourceMock.TokenFunc: method is nil but tokenSource.Token was just called")
	}
	mock.lockToken.Lock()
	mock.calls.Token = append(mock.calls.Token, struct{}{})
	mock.lockToken.Unlock()
	return mock.TokenFunc()
}

func (mock *tokenSourceMock) TokenCalls() []struct{} {
	mock.lockToken.RLock()
	calls := mock.calls.Token
	mock.lockToken.RUnlock()
	return calls
}
