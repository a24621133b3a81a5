package insight

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ observationReader = &observationReaderMock{}

type observationReaderMock struct {
	ListBySessionFunc    func(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error)
	ListRecentByUserFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error)

	calls struct {
		ListBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		ListRecentByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
		}
	}
	lockListBySession    sync.RWMutex
	lockListRecentByUser sync.RWMutex
}

func (mock *observationReaderMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error) {
	if mock.ListBySessionFunc == nil {
		panic("observationReaderMock.ListBySessionFunc: method is nil but observationReader.ListBySession was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockListBySession.Lock()
	mock.calls.ListBySession = append(mock.calls.ListBySession, callInfo)
	mock.lockListBySession.Unlock()
	return mock.ListBySessionFunc(ctx, sessionID)
}

func (mock *observationReaderMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}

func (mock *observationReaderMock) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error) {
	if mock.ListRecentByUserFunc == nil {
		panic("observationReaderMock.ListRecentByUserFunc: method is nil but observationReader.ListRecentByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
	}{Ctx: ctx, UserID: userID, Limit: limit}
	mock.lockListRecentByUser.Lock()
	mock.calls.ListRecentByUser = append(mock.calls.ListRecentByUser, callInfo)
	mock.lockListRecentByUser.Unlock()
	return mock.ListRecentByUserFunc(ctx, userID, limit)
}

func (mock *observationReaderMock) ListRecentByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListRecentByUser.RLock()
	calls := mock.calls.ListRecentByUser
	mock.lockListRecentByUser.RUnlock()
	return calls
}
