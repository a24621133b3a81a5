package insight

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ factRepo = &factRepoMock{}

type factRepoMock struct {
	ListActiveFunc func(ctx context.Context, userID uuid.UUID) ([]domain.LearnerFact, error)
	CreateFunc     func(ctx context.Context, f *domain.LearnerFact) (*domain.LearnerFact, error)
	ReinforceFunc  func(ctx context.Context, factID, lessonID uuid.UUID, observedAt time.Time) (bool, error)
	DeactivateFunc func(ctx context.Context, factID uuid.UUID) (bool, error)

	calls struct {
		ListActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			F   *domain.LearnerFact
		}
		Reinforce []struct {
			Ctx        context.Context
			FactID     uuid.UUID
			LessonID   uuid.UUID
			ObservedAt time.Time
		}
		Deactivate []struct {
			Ctx    context.Context
			FactID uuid.UUID
		}
	}
	lockListActive sync.RWMutex
	lockCreate     sync.RWMutex
	lockReinforce  sync.RWMutex
	lockDeactivate sync.RWMutex
}

func (mock *factRepoMock) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.LearnerFact, error) {
	if mock.ListActiveFunc == nil {
		panic("factRepoMock.ListActiveFunc: method is nil but factRepo.ListActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx, userID)
}

func (mock *factRepoMock) ListActiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}

func (mock *factRepoMock) Create(ctx context.Context, f *domain.LearnerFact) (*domain.LearnerFact, error) {
	if mock.CreateFunc == nil {
		panic("factRepoMock.CreateFunc: method is nil but factRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   *domain.LearnerFact
	}{Ctx: ctx, F: f}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, f)
}

func (mock *factRepoMock) CreateCalls() []struct {
	Ctx context.Context
	F   *domain.LearnerFact
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *factRepoMock) Reinforce(ctx context.Context, factID, lessonID uuid.UUID, observedAt time.Time) (bool, error) {
	if mock.ReinforceFunc == nil {
		panic("factRepoMock.ReinforceFunc: method is nil but factRepo.Reinforce was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		FactID     uuid.UUID
		LessonID   uuid.UUID
		ObservedAt time.Time
	}{Ctx: ctx, FactID: factID, LessonID: lessonID, ObservedAt: observedAt}
	mock.lockReinforce.Lock()
	mock.calls.Reinforce = append(mock.calls.Reinforce, callInfo)
	mock.lockReinforce.Unlock()
	return mock.ReinforceFunc(ctx, factID, lessonID, observedAt)
}

func (mock *factRepoMock) ReinforceCalls() []struct {
	Ctx        context.Context
	FactID     uuid.UUID
	LessonID   uuid.UUID
	ObservedAt time.Time
} {
	mock.lockReinforce.RLock()
	calls := mock.calls.Reinforce
	mock.lockReinforce.RUnlock()
	return calls
}

func (mock *factRepoMock) Deactivate(ctx context.Context, factID uuid.UUID) (bool, error) {
	if mock.DeactivateFunc == nil {
		panic("factRepoMock.DeactivateFunc: method is nil but factRepo.Deactivate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FactID uuid.UUID
	}{Ctx: ctx, FactID: factID}
	mock.lockDeactivate.Lock()
	mock.calls.Deactivate = append(mock.calls.Deactivate, callInfo)
	mock.lockDeactivate.Unlock()
	return mock.DeactivateFunc(ctx, factID)
}

func (mock *factRepoMock) DeactivateCalls() []struct {
	Ctx    context.Context
	FactID uuid.UUID
} {
	mock.lockDeactivate.RLock()
	calls := mock.calls.Deactivate
	mock.lockDeactivate.RUnlock()
	return calls
}
