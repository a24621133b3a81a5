package observation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ observationRepo = &observationRepoMock{}

type observationRepoMock struct {
	InsertBatchFunc      func(ctx context.Context, observations []domain.Observation) error
	ListBySessionFunc    func(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error)
	ListRecentByUserFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error)
	QueryFunc            func(ctx context.Context, f domain.ObservationFilter) ([]domain.Observation, error)

	calls struct {
		InsertBatch []struct {
			Ctx          context.Context
			Observations []domain.Observation
		}
		ListBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		ListRecentByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
		}
		Query []struct {
			Ctx context.Context
			F   domain.ObservationFilter
		}
	}
	lockInsertBatch      sync.RWMutex
	lockListBySession    sync.RWMutex
	lockListRecentByUser sync.RWMutex
	lockQuery            sync.RWMutex
}

func (mock *observationRepoMock) InsertBatch(ctx context.Context, observations []domain.Observation) error {
	if mock.InsertBatchFunc == nil {
		panic("observationRepoMock.InsertBatchFunc: method is nil but observationRepo.InsertBatch was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		Observations []domain.Observation
	}{Ctx: ctx, Observations: observations}
	mock.lockInsertBatch.Lock()
	mock.calls.InsertBatch = append(mock.calls.InsertBatch, callInfo)
	mock.lockInsertBatch.Unlock()
	return mock.InsertBatchFunc(ctx, observations)
}

func (mock *observationRepoMock) InsertBatchCalls() []struct {
	Ctx          context.Context
	Observations []domain.Observation
} {
	mock.lockInsertBatch.RLock()
	calls := mock.calls.InsertBatch
	mock.lockInsertBatch.RUnlock()
	return calls
}

func (mock *observationRepoMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error) {
	if mock.ListBySessionFunc == nil {
		panic("observationRepoMock.ListBySessionFunc: method is nil but observationRepo.ListBySession was just called")
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

func (mock *observationRepoMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}

func (mock *observationRepoMock) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error) {
	if mock.ListRecentByUserFunc == nil {
		panic("observationRepoMock.ListRecentByUserFunc: method is nil but observationRepo.ListRecentByUser was just called")
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

func (mock *observationRepoMock) ListRecentByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListRecentByUser.RLock()
	calls := mock.calls.ListRecentByUser
	mock.lockListRecentByUser.RUnlock()
	return calls
}

func (mock *observationRepoMock) Query(ctx context.Context, f domain.ObservationFilter) ([]domain.Observation, error) {
	if mock.QueryFunc == nil {
		panic("observationRepoMock.QueryFunc: method is nil but observationRepo.Query was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ObservationFilter
	}{Ctx: ctx, F: f}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, f)
}

func (mock *observationRepoMock) QueryCalls() []struct {
	Ctx context.Context
	F   domain.ObservationFilter
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}
